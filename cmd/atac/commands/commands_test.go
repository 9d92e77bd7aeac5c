package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"atac/internal/model"
	"atac/internal/workspace"
)

func openTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.Open(t.TempDir(), nil, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return ws
}

func TestCollectionLifecycle(t *testing.T) {
	ws := openTestWorkspace(t)
	Collection(ws, []string{"new", "Demo"})
	if _, err := ws.GetCollection("Demo"); err != nil {
		t.Fatalf("expected Demo to exist: %v", err)
	}

	Collection(ws, []string{"rename", "Demo", "Renamed"})
	if _, err := ws.GetCollection("Renamed"); err != nil {
		t.Fatalf("expected Renamed to exist: %v", err)
	}

	Collection(ws, []string{"delete", "Renamed"})
	if _, err := ws.GetCollection("Renamed"); err == nil {
		t.Fatalf("expected Renamed to be gone")
	}
}

func TestRequestFieldEdits(t *testing.T) {
	ws := openTestWorkspace(t)
	if _, err := ws.CreateCollection("Demo", model.FormatJSON); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	Request(ws, []string{"new", "Demo", "r1"})
	Request(ws, []string{"url", "Demo", "r1", "https://example.com"})
	Request(ws, []string{"method", "Demo", "r1", "POST"})
	Request(ws, []string{"headers", "Demo", "r1", "add", "X-Test", "1"})
	Request(ws, []string{"auth", "Demo", "r1", "bearer", "-token", "secret"})

	req, err := ws.GetRequest("Demo", "r1")
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if req.URL != "https://example.com" || req.Method != "POST" {
		t.Fatalf("got %+v", req)
	}
	if len(req.Headers) != 1 || req.Headers[0].Key != "X-Test" || req.Headers[0].Value != "1" {
		t.Fatalf("got headers %+v", req.Headers)
	}
	if req.Auth.Kind != model.AuthBearer || req.Auth.Token != "secret" {
		t.Fatalf("got auth %+v", req.Auth)
	}
}

func TestRequestSendExecutesAgainstLiveServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ws := openTestWorkspace(t)
	if _, err := ws.CreateCollection("Demo", model.FormatJSON); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	req, err := ws.CreateRequest("Demo", "ping")
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	req.URL = srv.URL

	Request(ws, []string{"send", "Demo", "ping"})

	updated, err := ws.GetRequest("Demo", "ping")
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	resp, _ := updated.State.Snapshot()
	if resp == nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("got %+v", resp)
	}
}

func TestEnvKeyLifecycle(t *testing.T) {
	ws := openTestWorkspace(t)
	if _, err := ws.CreateEnv("dev", model.FormatJSON); err != nil {
		t.Fatalf("CreateEnv: %v", err)
	}

	Env(ws, []string{"key", "add", "dev", "host", "localhost"})
	if v, ok := envGet(ws, "dev", "host"); !ok || v != "localhost" {
		t.Fatalf("got %q, %v", v, ok)
	}

	Env(ws, []string{"key", "set", "dev", "host", "example.com"})
	if v, ok := envGet(ws, "dev", "host"); !ok || v != "example.com" {
		t.Fatalf("got %q, %v", v, ok)
	}

	Env(ws, []string{"key", "rename", "dev", "host", "hostname"})
	if _, ok := envGet(ws, "dev", "host"); ok {
		t.Fatalf("expected old key gone after rename")
	}
	if v, ok := envGet(ws, "dev", "hostname"); !ok || v != "example.com" {
		t.Fatalf("got %q, %v", v, ok)
	}

	Env(ws, []string{"key", "delete", "dev", "hostname"})
	if _, ok := envGet(ws, "dev", "hostname"); ok {
		t.Fatalf("expected key to be gone after delete")
	}
}

func TestTryExecutesAgainstLiveServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test") != "1" {
			t.Errorf("missing header on try request")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	Try([]string{"GET", srv.URL, "-H", "X-Test: 1"})
}
