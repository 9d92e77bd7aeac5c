// Package model defines the typed representations shared by every other
// atac package: Request, Response, Auth, Body, Environment, Collection and
// Settings (SPEC_FULL §D, spec.md §3).
package model

import (
	"context"
	"sync"
	"time"
)

// Protocol discriminates a Request's transport.
type Protocol string

const (
	ProtocolHTTP      Protocol = "http"
	ProtocolWebSocket Protocol = "websocket"
)

// KVEntry is one ordered header/query-param entry. Duplicates are allowed;
// disabled entries are kept (not deleted) so the UI can re-enable them.
type KVEntry struct {
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// KVList preserves insertion order, unlike a map.
type KVList []KVEntry

// Enabled returns only the entries with Enabled set, in order.
func (l KVList) Enabled() KVList {
	out := make(KVList, 0, len(l))
	for _, e := range l {
		if e.Enabled {
			out = append(out, e)
		}
	}
	return out
}

// Request is a uniquely-named entity within its collection. Execution state
// (ExecState) is transient and must never be persisted.
type Request struct {
	Name           string   `json:"name" yaml:"name"`
	URL            string   `json:"url" yaml:"url"`
	Method         string   `json:"method" yaml:"method"`
	Protocol       Protocol `json:"protocol" yaml:"protocol"`
	Auth           Auth     `json:"auth" yaml:"auth"`
	Headers        KVList   `json:"headers" yaml:"headers"`
	Params         KVList   `json:"params" yaml:"params"`
	Body           Body     `json:"body" yaml:"body"`
	PreRequestScript  string `json:"pre_request_script,omitempty" yaml:"pre_request_script,omitempty"`
	PostRequestScript string `json:"post_request_script,omitempty" yaml:"post_request_script,omitempty"`
	Settings       RequestSettings `json:"settings" yaml:"settings"`

	// Messages is the WebSocket message log, persisted only for protocol
	// WebSocket; empty otherwise.
	Messages []WsMessage `json:"messages,omitempty" yaml:"messages,omitempty"`

	// State holds transient execution fields. It is never marshaled: its
	// json/yaml tags are "-", and persistence writes diskRequest, a
	// State-less mirror built by toDisk.
	State ExecState `json:"-" yaml:"-"`
}

// RequestSettings mirrors the per-request dials named in §4.6.
type RequestSettings struct {
	AllowRedirects            bool          `json:"allow_redirects" yaml:"allow_redirects"`
	StoreReceivedCookies      bool          `json:"store_received_cookies" yaml:"store_received_cookies"`
	AcceptInvalidCerts        bool          `json:"accept_invalid_certs" yaml:"accept_invalid_certs"`
	AcceptInvalidHostnames    bool          `json:"accept_invalid_hostnames" yaml:"accept_invalid_hostnames"`
	Timeout                   time.Duration `json:"timeout" yaml:"timeout"`
	UseConfigProxy            bool          `json:"use_config_proxy" yaml:"use_config_proxy"`
	PrettyPrintResponseContent bool         `json:"pretty_print_response_content" yaml:"pretty_print_response_content"`
}

// DefaultRequestSettings mirrors the source's defaults: redirects followed,
// cookies stored, TLS verification on, 30s timeout.
func DefaultRequestSettings() RequestSettings {
	return RequestSettings{
		AllowRedirects:             true,
		StoreReceivedCookies:       true,
		AcceptInvalidCerts:         false,
		AcceptInvalidHostnames:     false,
		Timeout:                    30 * time.Second,
		UseConfigProxy:             false,
		PrettyPrintResponseContent: true,
	}
}

// ExecState is the transient, non-persisted state shared between the
// controller and at most one background execution task per §5.
type ExecState struct {
	mu         sync.Mutex
	Pending    bool
	Cancel     context.CancelFunc
	LastResp   *Response
	ConsoleLog string
}

// Lock/Unlock give ExecState the short, non-suspending critical-section
// discipline required by §5: take lock, mutate, release, never suspend
// while held.
func (s *ExecState) Lock()   { s.mu.Lock() }
func (s *ExecState) Unlock() { s.mu.Unlock() }

// IsPending reports the pending flag under lock.
func (s *ExecState) IsPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Pending
}

// Begin marks the state pending and installs a fresh cancellation handle,
// returning the context background tasks should race against. If already
// pending, ok is false and the caller must treat the send as a no-op
// (§8 "two concurrent sends ... the second is a no-op").
func (s *ExecState) Begin(parent context.Context) (ctx context.Context, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Pending {
		return nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	s.Pending = true
	s.Cancel = cancel
	return ctx, true
}

// Finish clears pending, mints a fresh (inert) cancel handle so the request
// is immediately re-executable, and records the response.
func (s *ExecState) Finish(resp *Response, console string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pending = false
	_, cancel := context.WithCancel(context.Background())
	s.Cancel = cancel
	s.LastResp = resp
	s.ConsoleLog = console
}

// RequestCancel trips the cancellation handle, if any. Returns false if the
// request was not pending.
func (s *ExecState) RequestCancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.Pending || s.Cancel == nil {
		return false
	}
	s.Cancel()
	return true
}

// Snapshot returns the last response and console log under lock, for UI
// display without racing a concurrent Finish.
func (s *ExecState) Snapshot() (*Response, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastResp, s.ConsoleLog
}
