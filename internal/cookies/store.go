// Package cookies implements CookieStore (§4.4): a process-wide
// thread-safe cookie jar pluggable into the HTTP client, wrapping
// net/http/cookiejar.Jar. No example repo in the retrieval pack vendors a
// third-party cookie jar (every bridge client in the teacher builds
// directly on *http.Client); net/http/cookiejar already implements RFC 6265
// domain/path/expiry matching, so it is the one ambient concern where the
// standard library is the ecosystem's answer (recorded in DESIGN.md).
package cookies

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Entry is one cookie as displayed by the UI's `iter` operation.
type Entry struct {
	Domain string
	Path   string
	Name   string
	Value  string
}

// Store wraps cookiejar.Jar in a single synchronized handle usable both as
// a read-write collection (Iter/Remove) and as http.CookieJar for the
// client (§9 "self-referential cookie store").
type Store struct {
	mu  sync.Mutex
	jar *cookiejar.Jar

	// domains tracks every host ever passed to SetCookies, since
	// cookiejar.Jar exposes no enumeration API; Iter reconstructs current
	// values via Cookies(u) per remembered domain.
	domains map[string]struct{}
}

// New constructs an empty Store.
func New() (*Store, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Store{jar: jar, domains: map[string]struct{}{}}, nil
}

// SetCookies implements http.CookieJar, recording domains for later Iter calls.
func (s *Store) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.Lock()
	s.domains[u.Hostname()] = struct{}{}
	s.mu.Unlock()
	s.jar.SetCookies(u, cookies)
}

// Cookies implements http.CookieJar.
func (s *Store) Cookies(u *url.URL) []*http.Cookie {
	return s.jar.Cookies(u)
}

// Iter returns every cookie currently known across every domain ever seen,
// for UI display (§4.4).
func (s *Store) Iter() []Entry {
	s.mu.Lock()
	domains := make([]string, 0, len(s.domains))
	for d := range s.domains {
		domains = append(domains, d)
	}
	s.mu.Unlock()
	sort.Strings(domains)

	var out []Entry
	for _, d := range domains {
		seen := map[string]struct{}{}
		for _, scheme := range []string{"https", "http"} {
			u := &url.URL{Scheme: scheme, Host: d, Path: "/"}
			for _, c := range s.jar.Cookies(u) {
				if _, dup := seen[c.Name]; dup {
					continue
				}
				seen[c.Name] = struct{}{}
				out = append(out, Entry{Domain: d, Path: c.Path, Name: c.Name, Value: c.Value})
			}
		}
	}
	return out
}

// Remove deletes a single cookie by domain+name by overwriting it with an
// immediately-expired cookie, since cookiejar.Jar has no direct delete API.
func (s *Store) Remove(domain, name string) {
	for _, scheme := range []string{"https", "http"} {
		u := &url.URL{Scheme: scheme, Host: domain, Path: "/"}
		expired := &http.Cookie{Name: name, Value: "", MaxAge: -1, Path: "/"}
		s.jar.SetCookies(u, []*http.Cookie{expired})
	}
}

// Snapshot returns a deep-enough copy for before/after byte-identity
// comparisons in tests (§8: "store_received_cookies=false ... byte-identical
// before and after").
func (s *Store) Snapshot() string {
	entries := s.Iter()
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Domain)
		b.WriteByte('|')
		b.WriteString(e.Name)
		b.WriteByte('|')
		b.WriteString(e.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

// Ephemeral returns a fresh, unshared jar for a single call opted out of
// cookie storage (§4.4: "opted-out requests use an ephemeral jar").
func Ephemeral() http.CookieJar {
	jar, _ := cookiejar.New(nil)
	return jar
}
