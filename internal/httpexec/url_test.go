package httpexec

import (
	"testing"

	"atac/internal/model"
)

func TestSplitParamsBracedKeysArePathParams(t *testing.T) {
	params := model.KVList{
		{Key: "{id}", Value: "42", Enabled: true},
		{Key: "limit", Value: "10", Enabled: true},
	}
	path, query := SplitParams(params)
	if len(path) != 1 || path[0].Key != "{id}" {
		t.Fatalf("expected {id} classified as path param, got %+v", path)
	}
	if len(query) != 1 || query[0].Key != "limit" {
		t.Fatalf("expected limit classified as query param, got %+v", query)
	}
}

func TestSubstitutePathParams(t *testing.T) {
	path := model.KVList{{Key: "{id}", Value: "42"}}
	got := SubstitutePathParams("https://api.example.com/items/{id}", path)
	if got != "https://api.example.com/items/42" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildURLDeterministicQueryOrdering(t *testing.T) {
	query := model.KVList{
		{Key: "b", Value: "2"},
		{Key: "a", Value: "1"},
	}
	u, err := BuildURL("https://example.com/path", query)
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if got, want := u.RawQuery, "a=1&b=2"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildURLNoQueryLeavesURLUnchanged(t *testing.T) {
	u, err := BuildURL("https://example.com/path", nil)
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if u.RawQuery != "" {
		t.Fatalf("expected empty query, got %q", u.RawQuery)
	}
}

func TestBuildURLInvalidURL(t *testing.T) {
	if _, err := BuildURL("http://%zz", nil); err == nil {
		t.Fatalf("expected an error for an invalid URL")
	}
}
