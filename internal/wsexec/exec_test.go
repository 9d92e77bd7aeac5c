package wsexec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"atac/internal/model"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestUpgradeAndEchoRoundTrip(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	req := &model.Request{
		URL:      wsURL(srv) + "/socket",
		Protocol: model.ProtocolWebSocket,
		Settings: model.DefaultRequestSettings(),
	}
	ex := New()
	conn, resp, err := ex.Upgrade(context.Background(), req, &model.Environment{})
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	defer conn.Close()

	if err := conn.Send(model.WsText, "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		conn.logMu.Lock()
		var sawEcho bool
		n := len(req.Messages)
		for _, m := range req.Messages {
			if m.Sender == model.SenderServer && m.Type == model.WsText && m.Text == "hello" {
				sawEcho = true
			}
		}
		conn.logMu.Unlock()
		if sawEcho {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for echoed message, have %d messages so far", n)
		case <-time.After(10 * time.Millisecond):
		}
	}

	conn.logMu.Lock()
	var sawSent bool
	for _, m := range req.Messages {
		if m.Sender == model.SenderYou && m.Text == "hello" {
			sawSent = true
		}
	}
	conn.logMu.Unlock()
	if !sawSent {
		t.Fatalf("expected the sent frame recorded with sender=You, got %+v", req.Messages)
	}
}

func TestUpgradeFailsAgainstNonWebSocketEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	req := &model.Request{
		URL:      "ws" + strings.TrimPrefix(srv.URL, "http"),
		Protocol: model.ProtocolWebSocket,
		Settings: model.DefaultRequestSettings(),
	}
	ex := New()
	conn, resp, err := ex.Upgrade(context.Background(), req, &model.Environment{})
	if err != nil {
		t.Fatalf("Upgrade should not return a Go error for a failed handshake: %v", err)
	}
	if conn != nil {
		t.Fatalf("expected a nil connection on handshake failure")
	}
	if resp.StatusCode == http.StatusSwitchingProtocols {
		t.Fatalf("expected a non-101 status")
	}
}

func TestSendCloseFrameUnsupported(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	req := &model.Request{URL: wsURL(srv) + "/socket", Protocol: model.ProtocolWebSocket, Settings: model.DefaultRequestSettings()}
	ex := New()
	conn, _, err := ex.Upgrade(context.Background(), req, &model.Environment{})
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	defer conn.Close()

	if err := conn.Send(model.WsClose, "bye"); err == nil {
		t.Fatalf("expected sending a Close frame through Send to be rejected")
	}
}

func TestCloseStopsReceiveLoop(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	req := &model.Request{URL: wsURL(srv) + "/socket", Protocol: model.ProtocolWebSocket, Settings: model.DefaultRequestSettings()}
	ex := New()
	conn, _, err := ex.Upgrade(context.Background(), req, &model.Environment{})
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}

	done := make(chan struct{})
	go func() {
		conn.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Close did not return in time")
	}
}
