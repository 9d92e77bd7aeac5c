// Package errs defines the typed error kinds surfaced across atac's
// components, matched with errors.As the way githubbridge/errors.go and
// appstorebridge/errors.go type their provider errors.
package errs

import "fmt"

// Kind enumerates the error categories named in the error handling design.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindIO           Kind = "io"
	KindNetwork      Kind = "network"
	KindTimeout      Kind = "timeout"
	KindCanceled     Kind = "canceled"
	KindScript       Kind = "script"
	KindAuth         Kind = "auth"
	KindImport       Kind = "import"
	KindExport       Kind = "export"
	KindUnsupported  Kind = "unsupported"
	KindConflict     Kind = "conflict"
)

// Error is the typed error atac functions return when the error belongs to
// one of the well-known Kinds; everything else is a plain wrapped error.
type Error struct {
	Kind    Kind
	Op      string
	Target  string
	Err     error
}

func (e *Error) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s: %s (%s): %v", e.Op, e.Kind, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op, target string, err error) *Error {
	return &Error{Kind: kind, Op: op, Target: target, Err: err}
}

func NotFound(op, target string, err error) *Error    { return New(KindNotFound, op, target, err) }
func Validation(op, target string, err error) *Error  { return New(KindValidation, op, target, err) }
func IO(op, target string, err error) *Error          { return New(KindIO, op, target, err) }
func Network(op, target string, err error) *Error     { return New(KindNetwork, op, target, err) }
func Timeout(op, target string, err error) *Error     { return New(KindTimeout, op, target, err) }
func Canceled(op, target string, err error) *Error    { return New(KindCanceled, op, target, err) }
func Script(op, target string, err error) *Error      { return New(KindScript, op, target, err) }
func Auth(op, target string, err error) *Error        { return New(KindAuth, op, target, err) }
func Import(op, target string, err error) *Error      { return New(KindImport, op, target, err) }
func Export(op, target string, err error) *Error      { return New(KindExport, op, target, err) }
func Unsupported(op, target string, err error) *Error { return New(KindUnsupported, op, target, err) }
func Conflict(op, target string, err error) *Error    { return New(KindConflict, op, target, err) }

// Is reports whether err is an *Error of the given kind, unwrapping as
// needed.
func Is(err error, kind Kind) bool {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind == kind
	}
	return false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
