package model

import "testing"

func TestEnvironmentSetGetUpdatesInPlace(t *testing.T) {
	e := &Environment{}
	e.Set("A", "1")
	e.Set("B", "2")
	e.Set("A", "updated")

	if v, ok := e.Get("A"); !ok || v != "updated" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if len(e.Vars) != 2 {
		t.Fatalf("expected no duplicate entries, got %+v", e.Vars)
	}
	if e.Vars[0].Key != "A" {
		t.Fatalf("expected order preserved on update, got %+v", e.Vars)
	}
}

func TestEnvironmentGetMissingKey(t *testing.T) {
	e := &Environment{}
	if _, ok := e.Get("nope"); ok {
		t.Fatalf("expected ok=false for a missing key")
	}
}

func TestEnvironmentDelete(t *testing.T) {
	e := &Environment{}
	e.Set("A", "1")
	e.Set("B", "2")
	if !e.Delete("A") {
		t.Fatalf("expected Delete to report true for an existing key")
	}
	if e.Delete("A") {
		t.Fatalf("expected Delete to report false the second time")
	}
	if _, ok := e.Get("A"); ok {
		t.Fatalf("expected A removed")
	}
	if len(e.Vars) != 1 {
		t.Fatalf("got %+v", e.Vars)
	}
}

func TestEnvironmentRenamePreservesPositionAndValue(t *testing.T) {
	e := &Environment{}
	e.Set("A", "1")
	e.Set("B", "2")
	if !e.Rename("A", "A2") {
		t.Fatalf("expected Rename to succeed")
	}
	if e.Vars[0].Key != "A2" || e.Vars[0].Value != "1" {
		t.Fatalf("got %+v", e.Vars[0])
	}
	if e.Rename("missing", "x") {
		t.Fatalf("expected Rename to report false for a missing key")
	}
}

func TestEnvironmentAsMap(t *testing.T) {
	e := &Environment{}
	e.Set("A", "1")
	e.Set("B", "2")
	m := e.AsMap()
	if m["A"] != "1" || m["B"] != "2" || len(m) != 2 {
		t.Fatalf("got %+v", m)
	}
}
