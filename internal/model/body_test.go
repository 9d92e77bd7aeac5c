package model

import "testing"

func TestIsFileValue(t *testing.T) {
	path, ok := IsFileValue("!!/tmp/x.bin")
	if !ok || path != "/tmp/x.bin" {
		t.Fatalf("got %q, %v", path, ok)
	}
	if _, ok := IsFileValue("plain value"); ok {
		t.Fatalf("expected ok=false for a non-file value")
	}
}

func TestBodyContentType(t *testing.T) {
	cases := map[BodyKind]string{
		BodyForm:       "application/x-www-form-urlencoded",
		BodyRaw:        "text/plain",
		BodyJSON:       "application/json",
		BodyXML:        "application/xml",
		BodyHTML:       "text/html",
		BodyJavascript: "application/javascript",
		BodyNone:       "",
		BodyFile:       "",
		BodyMultipart:  "",
	}
	for kind, want := range cases {
		if got := (Body{Kind: kind}).ContentType(); got != want {
			t.Fatalf("ContentType(%v) = %q, want %q", kind, got, want)
		}
	}
}

func TestBodyEmpty(t *testing.T) {
	if !(Body{}).Empty() {
		t.Fatalf("zero-value Body should be empty")
	}
	if !(Body{Kind: BodyNone}).Empty() {
		t.Fatalf("BodyNone should be empty")
	}
	if (Body{Kind: BodyMultipart, Entries: KVList{{Key: "a", Value: "1"}}}).Empty() {
		t.Fatalf("expected non-empty multipart body")
	}
	if !(Body{Kind: BodyForm}).Empty() {
		t.Fatalf("expected empty form body with no entries")
	}
	if !(Body{Kind: BodyFile}).Empty() {
		t.Fatalf("expected empty file body with no path")
	}
	if (Body{Kind: BodyFile, Path: "/tmp/x"}).Empty() {
		t.Fatalf("expected non-empty file body with a path")
	}
	if !(Body{Kind: BodyJSON}).Empty() {
		t.Fatalf("expected empty JSON body with no text")
	}
	if (Body{Kind: BodyJSON, Text: "{}"}).Empty() {
		t.Fatalf("expected non-empty JSON body with text")
	}
}
