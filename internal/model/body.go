package model

import "strings"

// BodyKind discriminates the Body tagged union (§3).
type BodyKind string

const (
	BodyNone       BodyKind = "none"
	BodyMultipart  BodyKind = "multipart"
	BodyForm       BodyKind = "form"
	BodyFile       BodyKind = "file"
	BodyRaw        BodyKind = "raw"
	BodyJSON       BodyKind = "json"
	BodyXML        BodyKind = "xml"
	BodyHTML       BodyKind = "html"
	BodyJavascript BodyKind = "javascript"
)

// FilePrefix marks a Multipart/Form value as a file path whose contents
// form the part body, per the `!!` convention (§9 glossary).
const FilePrefix = "!!"

// Body is a closed tagged union; exactly the fields relevant to Kind are
// populated. Total-match switches on Kind at every use site (§9 design
// note: "tagged unions everywhere").
type Body struct {
	Kind BodyKind `json:"kind" yaml:"kind"`

	// Multipart/Form share the same ordered key/value shape.
	Entries KVList `json:"entries,omitempty" yaml:"entries,omitempty"`

	// File holds a path for BodyFile.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Text holds the payload for Raw/Json/Xml/Html/Javascript.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// IsFileValue reports whether v is a `!!path` file reference and returns
// the bare path.
func IsFileValue(v string) (path string, ok bool) {
	if strings.HasPrefix(v, FilePrefix) {
		return strings.TrimPrefix(v, FilePrefix), true
	}
	return "", false
}

// ContentType returns the canonical Content-Type for non-empty variants, or
// "" for BodyNone/BodyFile/BodyMultipart (whose type is set by the form
// builder with its boundary, or left to the server for BodyFile).
func (b Body) ContentType() string {
	switch b.Kind {
	case BodyForm:
		return "application/x-www-form-urlencoded"
	case BodyRaw:
		return "text/plain"
	case BodyJSON:
		return "application/json"
	case BodyXML:
		return "application/xml"
	case BodyHTML:
		return "text/html"
	case BodyJavascript:
		return "application/javascript"
	default:
		return ""
	}
}

// Empty reports whether the body carries no payload at all.
func (b Body) Empty() bool {
	switch b.Kind {
	case "", BodyNone:
		return true
	case BodyMultipart, BodyForm:
		return len(b.Entries) == 0
	case BodyFile:
		return b.Path == ""
	default:
		return b.Text == ""
	}
}
