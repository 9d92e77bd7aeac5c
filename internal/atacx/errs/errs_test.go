package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageWithAndWithoutTarget(t *testing.T) {
	e := NotFound("get_collection", "demo", errors.New("boom"))
	if got, want := e.Error(), "get_collection: not_found (demo): boom"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	e2 := New(KindIO, "read_file", "", errors.New("boom"))
	if got, want := e2.Error(), "read_file: io: boom"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("root cause")
	e := Validation("op", "target", inner)
	if !errors.Is(e, inner) {
		t.Fatalf("expected errors.Is to see through Unwrap")
	}
}

func TestIsMatchesDirectKind(t *testing.T) {
	e := Conflict("create", "demo", errors.New("exists"))
	if !Is(e, KindConflict) {
		t.Fatalf("expected Is to match KindConflict")
	}
	if Is(e, KindTimeout) {
		t.Fatalf("expected Is to reject a mismatched kind")
	}
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	inner := Timeout("send", "req1", errors.New("deadline exceeded"))
	wrapped := fmt.Errorf("request failed: %w", inner)
	if !Is(wrapped, KindTimeout) {
		t.Fatalf("expected Is to unwrap through fmt.Errorf wrapping")
	}
}

func TestIsFalseForPlainError(t *testing.T) {
	if Is(errors.New("plain"), KindIO) {
		t.Fatalf("expected Is to report false for a non-*Error")
	}
}

func TestConstructorsSetExpectedKind(t *testing.T) {
	cases := []struct {
		kind Kind
		make func(op, target string, err error) *Error
	}{
		{KindNotFound, NotFound},
		{KindValidation, Validation},
		{KindIO, IO},
		{KindNetwork, Network},
		{KindTimeout, Timeout},
		{KindCanceled, Canceled},
		{KindScript, Script},
		{KindAuth, Auth},
		{KindImport, Import},
		{KindExport, Export},
		{KindUnsupported, Unsupported},
		{KindConflict, Conflict},
	}
	for _, c := range cases {
		e := c.make("op", "target", errors.New("x"))
		if e.Kind != c.kind {
			t.Fatalf("got kind %v, want %v", e.Kind, c.kind)
		}
	}
}
