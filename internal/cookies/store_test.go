package cookies

import (
	"net/http"
	"net/url"
	"testing"
)

func TestSetCookiesThenIter(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	u, _ := url.Parse("https://api.example.com/")
	s.SetCookies(u, []*http.Cookie{{Name: "session", Value: "abc", Path: "/"}})

	entries := s.Iter()
	if len(entries) != 1 {
		t.Fatalf("expected 1 cookie, got %d: %+v", len(entries), entries)
	}
	if entries[0].Domain != "api.example.com" || entries[0].Name != "session" || entries[0].Value != "abc" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestRemoveDeletesCookie(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	u, _ := url.Parse("https://api.example.com/")
	s.SetCookies(u, []*http.Cookie{{Name: "session", Value: "abc", Path: "/"}})
	s.Remove("api.example.com", "session")

	if entries := s.Iter(); len(entries) != 0 {
		t.Fatalf("expected cookie removed, got %+v", entries)
	}
}

func TestSnapshotByteIdenticalWhenUntouched(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	u, _ := url.Parse("https://api.example.com/")
	s.SetCookies(u, []*http.Cookie{{Name: "a", Value: "1", Path: "/"}})

	before := s.Snapshot()
	// Simulate a request that opted out of cookie storage: it must use an
	// ephemeral jar and never touch the shared store (§4.4, §8).
	_ = Ephemeral()
	after := s.Snapshot()

	if before != after {
		t.Fatalf("expected snapshot to be unchanged, before=%q after=%q", before, after)
	}
}

func TestEphemeralJarsAreIndependent(t *testing.T) {
	a := Ephemeral()
	b := Ephemeral()
	u, _ := url.Parse("https://example.com/")
	a.SetCookies(u, []*http.Cookie{{Name: "x", Value: "1", Path: "/"}})
	if len(b.Cookies(u)) != 0 {
		t.Fatalf("expected independent ephemeral jars, got cookies leaked across instances")
	}
}
