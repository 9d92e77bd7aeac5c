package workspace

import (
	"context"
	"fmt"

	"atac/internal/atacx/errs"
	"atac/internal/model"
	"atac/internal/wsexec"
)

// ConnectWebSocket upgrades reqName to a live WebSocket connection and
// records it for later Send/Disconnect calls, mirroring Send's pattern for
// HTTP requests but without the ExecState pending guard: a WebSocket
// connection's lifetime spans many user-driven sends, not a single
// request/response (§4.7).
func (w *Workspace) ConnectWebSocket(colName, reqName string) (*model.Response, error) {
	col, idx := w.findCollectionLocked(colName)
	if idx < 0 {
		return nil, errs.NotFound("connect_websocket", colName, fmt.Errorf("NotFound"))
	}
	req, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return nil, errs.NotFound("connect_websocket", reqName, fmt.Errorf("NotFound"))
	}

	w.mu.Lock()
	if _, already := w.wsConns[req]; already {
		w.mu.Unlock()
		return nil, errs.Conflict("connect_websocket", reqName, fmt.Errorf("already connected"))
	}
	w.mu.Unlock()

	conn, resp, err := w.ws.Upgrade(context.Background(), req, w.ActiveEnvironment())
	if err != nil {
		return nil, err
	}
	if conn != nil {
		w.mu.Lock()
		w.wsConns[req] = conn
		w.mu.Unlock()
	}
	return resp, nil
}

// SendWsMessage writes a composed frame on an already-connected WebSocket
// request (§4.7).
func (w *Workspace) SendWsMessage(colName, reqName string, msgType model.WsMessageType, composition string) error {
	conn, err := w.wsConnFor(colName, reqName)
	if err != nil {
		return err
	}
	return conn.Send(msgType, composition)
}

// DisconnectWebSocket closes and forgets the connection backing reqName.
func (w *Workspace) DisconnectWebSocket(colName, reqName string) error {
	conn, err := w.wsConnFor(colName, reqName)
	if err != nil {
		return err
	}
	conn.Close()

	w.mu.Lock()
	col, _ := w.findCollection(colName)
	w.mu.Unlock()
	if req, ridx := col.FindRequest(reqName); ridx >= 0 {
		w.mu.Lock()
		delete(w.wsConns, req)
		w.mu.Unlock()
	}
	return nil
}

func (w *Workspace) wsConnFor(colName, reqName string) (*wsexec.Connection, error) {
	col, idx := w.findCollectionLocked(colName)
	if idx < 0 {
		return nil, errs.NotFound("websocket", colName, fmt.Errorf("NotFound"))
	}
	req, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return nil, errs.NotFound("websocket", reqName, fmt.Errorf("NotFound"))
	}
	w.mu.Lock()
	conn, ok := w.wsConns[req]
	w.mu.Unlock()
	if !ok {
		return nil, errs.Validation("websocket", reqName, fmt.Errorf("not connected"))
	}
	return conn, nil
}
