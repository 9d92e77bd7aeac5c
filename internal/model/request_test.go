package model

import (
	"context"
	"testing"
)

func TestKVListEnabledFiltersDisabled(t *testing.T) {
	l := KVList{
		{Key: "a", Value: "1", Enabled: true},
		{Key: "b", Value: "2", Enabled: false},
		{Key: "c", Value: "3", Enabled: true},
	}
	got := l.Enabled()
	if len(got) != 2 || got[0].Key != "a" || got[1].Key != "c" {
		t.Fatalf("got %+v", got)
	}
}

func TestDefaultRequestSettings(t *testing.T) {
	s := DefaultRequestSettings()
	if !s.AllowRedirects || !s.StoreReceivedCookies || !s.PrettyPrintResponseContent {
		t.Fatalf("got %+v", s)
	}
	if s.AcceptInvalidCerts || s.AcceptInvalidHostnames || s.UseConfigProxy {
		t.Fatalf("got %+v", s)
	}
	if s.Timeout.Seconds() != 30 {
		t.Fatalf("got timeout %v", s.Timeout)
	}
}

func TestExecStateBeginFinishLifecycle(t *testing.T) {
	var s ExecState
	if s.IsPending() {
		t.Fatalf("expected not pending initially")
	}
	ctx, ok := s.Begin(context.Background())
	if !ok || ctx == nil {
		t.Fatalf("expected Begin to succeed")
	}
	if !s.IsPending() {
		t.Fatalf("expected pending after Begin")
	}
	if _, ok := s.Begin(context.Background()); ok {
		t.Fatalf("expected a second concurrent Begin to fail")
	}
	resp := &Response{Status: "200 OK"}
	s.Finish(resp, "log output")
	if s.IsPending() {
		t.Fatalf("expected not pending after Finish")
	}
	gotResp, gotLog := s.Snapshot()
	if gotResp != resp || gotLog != "log output" {
		t.Fatalf("got %v, %q", gotResp, gotLog)
	}
	if _, ok := s.Begin(context.Background()); !ok {
		t.Fatalf("expected Begin to succeed again after Finish")
	}
}

func TestExecStateRequestCancelOnlyWhenPending(t *testing.T) {
	var s ExecState
	if s.RequestCancel() {
		t.Fatalf("expected RequestCancel to be a no-op when not pending")
	}
	ctx, _ := s.Begin(context.Background())
	if !s.RequestCancel() {
		t.Fatalf("expected RequestCancel to succeed while pending")
	}
	select {
	case <-ctx.Done():
	default:
		t.Fatalf("expected the context to be canceled")
	}
}
