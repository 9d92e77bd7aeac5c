package model

// ResponseContentKind discriminates ResponseContent: textual body or a
// decoded image, per §3's tagged Response.content.
type ResponseContentKind string

const (
	ContentText  ResponseContentKind = "text"
	ContentImage ResponseContentKind = "image"
)

// ResponseContent is the tagged union on Response.Content.
type ResponseContent struct {
	Kind ResponseContentKind `json:"kind"`

	// Text holds the decoded/pretty-printed/hex-dumped body for ContentText.
	Text string `json:"text,omitempty"`

	// Bytes always holds the raw body, image or not (decode phase retains
	// bytes either way, per §4.6).
	Bytes []byte `json:"-"`

	// ImageFormat names the decoded image format (e.g. "png"), empty if
	// decoding failed or Kind is ContentText.
	ImageFormat string `json:"image_format,omitempty"`
}

// Response is the result of executing a Request (§3, §4.6).
type Response struct {
	Status     string              `json:"status"`
	StatusCode int                 `json:"status_code"`
	Duration   string              `json:"duration"`
	DurationNS int64               `json:"duration_ns"`
	Content    ResponseContent     `json:"content"`
	Cookies    string              `json:"cookies"`
	Headers    KVList              `json:"headers"`
}

// Synthetic statuses produced by the dispatch phase instead of a real HTTP
// round trip (§4.6, §5).
const (
	StatusInvalidURL = "INVALID URL"
	StatusCanceled   = "CANCELED"
	StatusTimeout    = "TIMEOUT"
)

// WsMessage is one entry in a WebSocket request's message log (§4.7).
type WsMessage struct {
	Type      WsMessageType `json:"type" yaml:"type"`
	Payload   []byte        `json:"payload" yaml:"payload"`
	Text      string        `json:"text,omitempty" yaml:"text,omitempty"`
	CloseCode int           `json:"close_code,omitempty" yaml:"close_code,omitempty"`
	CloseReason string      `json:"close_reason,omitempty" yaml:"close_reason,omitempty"`
	Timestamp int64         `json:"timestamp" yaml:"timestamp"`
	Sender    MessageSender `json:"sender" yaml:"sender"`
}

// WsMessageType enumerates the tagged MessageType union from §4.7.
type WsMessageType string

const (
	WsText   WsMessageType = "text"
	WsBinary WsMessageType = "binary"
	WsPing   WsMessageType = "ping"
	WsPong   WsMessageType = "pong"
	WsClose  WsMessageType = "close"
)

// MessageSender discriminates who originated a WsMessage.
type MessageSender string

const (
	SenderServer MessageSender = "server"
	SenderYou    MessageSender = "you"
)
