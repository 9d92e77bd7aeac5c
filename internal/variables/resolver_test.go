package variables

import (
	"strconv"
	"testing"
	"time"

	"atac/internal/model"
)

func fixedResolver(t time.Time) *Resolver {
	return &Resolver{Now: func() time.Time { return t }}
}

func TestResolveEnvSubstitution(t *testing.T) {
	env := &model.Environment{Name: "default"}
	env.Set("HOST", "api.example.com")
	env.Set("TOK", "xyz")

	r := New()
	got := r.Resolve("https://{{HOST}}/v1/me", env)
	if want := "https://api.example.com/v1/me"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	got = r.Resolve("Bearer {{TOK}}", env)
	if want := "Bearer xyz"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveUndefinedKeyLeftVerbatim(t *testing.T) {
	env := &model.Environment{Name: "default"}
	r := New()
	got := r.Resolve("{{MISSING}}", env)
	if got != "{{MISSING}}" {
		t.Fatalf("expected undefined key left verbatim, got %q", got)
	}
}

func TestResolveNilEnvironmentIsIdentityExceptBuiltins(t *testing.T) {
	r := New()
	got := r.Resolve("plain string {{UNSET}}", nil)
	if got != "plain string {{UNSET}}" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveBuiltinNow(t *testing.T) {
	fixed := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	r := fixedResolver(fixed)
	got := r.Resolve("{{NOW}}", &model.Environment{})
	want := fixed.Format(time.RFC3339)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveBuiltinTimestamp(t *testing.T) {
	fixed := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	r := fixedResolver(fixed)
	got := r.Resolve("{{TIMESTAMP}}", &model.Environment{})
	want := strconv.FormatInt(fixed.Unix(), 10)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveBuiltinUUIDsAreWellFormed(t *testing.T) {
	r := New()
	v4 := r.Resolve("{{UUIDv4}}", &model.Environment{})
	v7 := r.Resolve("{{UUIDv7}}", &model.Environment{})
	for _, s := range []string{v4, v7} {
		if len(s) != 36 {
			t.Fatalf("expected a 36-char UUID string, got %q", s)
		}
	}
	if v4 == v7 {
		t.Fatalf("expected distinct UUIDs per call")
	}
}

func TestResolveEnvValuesAreNotThemselvesResolved(t *testing.T) {
	env := &model.Environment{}
	env.Set("A", "{{B}}")
	env.Set("B", "real")

	r := New()
	got := r.Resolve("{{A}}", env)
	if got != "{{B}}" {
		t.Fatalf("expected single-pass substitution (no recursive resolve), got %q", got)
	}
}

func TestResolveKVResolvesValuesOnly(t *testing.T) {
	env := &model.Environment{}
	env.Set("TOK", "xyz")

	list := model.KVList{
		{Key: "{{TOK}}", Value: "Bearer {{TOK}}", Enabled: true},
	}
	r := New()
	out := r.ResolveKV(list, env)
	if out[0].Key != "{{TOK}}" {
		t.Fatalf("expected key left untouched, got %q", out[0].Key)
	}
	if out[0].Value != "Bearer xyz" {
		t.Fatalf("expected value resolved, got %q", out[0].Value)
	}
}
