package httpexec

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"atac/internal/model"
)

func TestBuildBodyNone(t *testing.T) {
	b, err := BuildBody(model.Body{})
	if err != nil {
		t.Fatalf("BuildBody: %v", err)
	}
	if b != nil {
		t.Fatalf("expected nil body for BodyNone")
	}
}

func TestBuildBodyJSONCarriesContentType(t *testing.T) {
	b, err := BuildBody(model.Body{Kind: model.BodyJSON, Text: `{"a":1}`})
	if err != nil {
		t.Fatalf("BuildBody: %v", err)
	}
	if b.ContentType != "application/json" {
		t.Fatalf("got %q", b.ContentType)
	}
	data, _ := io.ReadAll(b.Reader)
	if string(data) != `{"a":1}` {
		t.Fatalf("got %q", data)
	}
}

func TestBuildBodyFormURLEncoded(t *testing.T) {
	b, err := BuildBody(model.Body{
		Kind:    model.BodyForm,
		Entries: model.KVList{{Key: "a", Value: "1", Enabled: true}, {Key: "b", Value: "x y", Enabled: true}},
	})
	if err != nil {
		t.Fatalf("BuildBody: %v", err)
	}
	data, _ := io.ReadAll(b.Reader)
	if string(data) != "a=1&b=x+y" {
		t.Fatalf("got %q", data)
	}
}

func TestBuildBodyFileMissingFails(t *testing.T) {
	_, err := BuildBody(model.Body{Kind: model.BodyFile, Path: filepath.Join(t.TempDir(), "nope.bin")})
	if err == nil {
		t.Fatalf("expected CouldNotOpenFile error")
	}
}

func TestBuildBodyMultipartWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.bin")
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b, err := BuildBody(model.Body{
		Kind: model.BodyMultipart,
		Entries: model.KVList{
			{Key: "field", Value: "hello", Enabled: true},
			{Key: "upload", Value: model.FilePrefix + path, Enabled: true},
		},
	})
	if err != nil {
		t.Fatalf("BuildBody: %v", err)
	}

	_, params, err := mime.ParseMediaType(b.ContentType)
	if err != nil {
		t.Fatalf("ParseMediaType: %v", err)
	}
	mr := multipart.NewReader(b.Reader, params["boundary"])

	var sawField, sawFile bool
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		data, _ := io.ReadAll(part)
		switch part.FormName() {
		case "field":
			sawField = true
			if string(data) != "hello" {
				t.Fatalf("field value = %q", data)
			}
		case "upload":
			sawFile = true
			if part.FileName() != "x.bin" {
				t.Fatalf("filename = %q", part.FileName())
			}
			if string(data) != string(payload) {
				t.Fatalf("file contents = %x, want %x", data, payload)
			}
		}
	}
	if !sawField || !sawFile {
		t.Fatalf("expected both a text part and a file part, sawField=%v sawFile=%v", sawField, sawFile)
	}
}

func TestBuildBodyMultipartMissingFileFails(t *testing.T) {
	_, err := BuildBody(model.Body{
		Kind: model.BodyMultipart,
		Entries: model.KVList{
			{Key: "upload", Value: model.FilePrefix + "/tmp/does-not-exist-atac-test.bin", Enabled: true},
		},
	})
	if err == nil {
		t.Fatalf("expected CouldNotOpenFile before dispatch")
	}
}
