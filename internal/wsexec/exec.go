// Package wsexec implements WsExecutor (§4.7): upgrade, split tx/rx behind
// exclusive locks, background receive loop, send on demand.
package wsexec

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"atac/internal/atacx/errs"
	"atac/internal/atacx/logging"
	"atac/internal/model"
	"atac/internal/variables"
)

// Connection holds a live WebSocket session's split tx/rx halves, each
// behind its own exclusive lock per §4.7 ("both held behind exclusive
// locks").
type Connection struct {
	conn *websocket.Conn

	txMu sync.Mutex
	rxMu sync.Mutex

	logMu sync.Mutex
	req   *model.Request

	cancel context.CancelFunc
	done   chan struct{}

	logger logging.EventLogger
}

// Executor upgrades HTTP requests to WebSocket connections.
type Executor struct {
	Resolver *variables.Resolver
	Logger   logging.EventLogger
}

func New() *Executor {
	return &Executor{Resolver: variables.New(), Logger: logging.NoopLogger{}}
}

// Upgrade resolves the URL and enabled headers as HttpExecutor's build phase
// does and then performs a WebSocket handshake instead of a plain send
// (§4.7); the request's params are not applied. On anything other than 101 Switching Protocols, it returns the
// response as an ordinary HTTP failure; the caller should mark the
// request disconnected.
func (ex *Executor) Upgrade(ctx context.Context, req *model.Request, env *model.Environment) (*Connection, *model.Response, error) {
	rawURL := ex.Resolver.Resolve(req.URL, env)
	headers := ex.Resolver.ResolveKV(req.Headers, env)

	hdr := http.Header{}
	for _, h := range headers.Enabled() {
		hdr.Set(h.Key, h.Value)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	if req.Settings.Timeout > 0 {
		dialer.HandshakeTimeout = req.Settings.Timeout
	}

	conn, httpResp, err := dialer.DialContext(ctx, rawURL, hdr)
	if err != nil {
		status := "WS UPGRADE FAILED"
		code := 0
		if httpResp != nil {
			status = httpResp.Status
			code = httpResp.StatusCode
		}
		return nil, &model.Response{Status: status, StatusCode: code}, nil
	}

	connCtx, cancel := context.WithCancel(ctx)
	c := &Connection{
		conn:   conn,
		req:    req,
		cancel: cancel,
		done:   make(chan struct{}),
		logger: ex.Logger,
	}
	go c.receiveLoop(connCtx)

	return c, &model.Response{Status: httpResp.Status, StatusCode: httpResp.StatusCode}, nil
}

// receiveLoop repeatedly reads frames, mapping each to a WsMessage and
// appending it to the request's message log with sender=Server (§4.7). It
// terminates when the cancellation handle is tripped or the remote sends
// Close / a transport error occurs, recording a final Close entry.
func (c *Connection) receiveLoop(ctx context.Context) {
	defer close(c.done)
	defer c.conn.Close()

	for {
		select {
		case <-ctx.Done():
			c.appendClose(websocket.CloseNormalClosure, "cancelled")
			return
		default:
		}

		c.rxMu.Lock()
		msgType, data, err := c.conn.ReadMessage()
		c.rxMu.Unlock()

		if err != nil {
			code := websocket.CloseAbnormalClosure
			reason := err.Error()
			if ce, ok := err.(*websocket.CloseError); ok {
				code = ce.Code
				reason = ce.Text
			}
			c.appendClose(code, reason)
			return
		}

		c.append(mapIncoming(msgType, data), model.SenderServer)
	}
}

func mapIncoming(wsType int, data []byte) model.WsMessage {
	m := model.WsMessage{Payload: data, Timestamp: 0}
	switch wsType {
	case websocket.TextMessage:
		m.Type = model.WsText
		m.Text = string(data)
	case websocket.BinaryMessage:
		m.Type = model.WsBinary
	case websocket.PingMessage:
		m.Type = model.WsPing
	case websocket.PongMessage:
		m.Type = model.WsPong
	}
	return m
}

func (c *Connection) append(m model.WsMessage, sender model.MessageSender) {
	m.Sender = sender
	c.logMu.Lock()
	c.req.Messages = append(c.req.Messages, m)
	c.logMu.Unlock()
	if c.logger != nil {
		c.logger.Log(map[string]any{"event": "ws_message", "type": string(m.Type), "sender": string(sender)})
	}
}

func (c *Connection) appendClose(code int, reason string) {
	c.append(model.WsMessage{Type: model.WsClose, CloseCode: code, CloseReason: reason}, model.SenderServer)
}

// Send writes composition through tx, mapped by msgType, and appends the
// sent frame with sender=You (§4.7).
func (c *Connection) Send(msgType model.WsMessageType, composition string) error {
	wsType, err := wsMessageType(msgType)
	if err != nil {
		return err
	}

	c.txMu.Lock()
	err = c.conn.WriteMessage(wsType, []byte(composition))
	c.txMu.Unlock()
	if err != nil {
		return errs.Network("ws_send", "", err)
	}

	c.append(model.WsMessage{Type: msgType, Payload: []byte(composition), Text: composition}, model.SenderYou)
	return nil
}

func wsMessageType(t model.WsMessageType) (int, error) {
	switch t {
	case model.WsText:
		return websocket.TextMessage, nil
	case model.WsBinary:
		return websocket.BinaryMessage, nil
	case model.WsPing:
		return websocket.PingMessage, nil
	case model.WsPong:
		return websocket.PongMessage, nil
	default:
		return 0, errs.Unsupported("ws_send", string(t), fmt.Errorf("cannot send a Close frame as a composed message"))
	}
}

// Close trips the cancellation handle and closes the socket, ending the
// receive loop, and waits for it to finish.
func (c *Connection) Close() {
	c.cancel()
	c.conn.Close()
	<-c.done
}
