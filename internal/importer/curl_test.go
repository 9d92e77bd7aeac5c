package importer

import (
	"os"
	"path/filepath"
	"testing"

	"atac/internal/model"
)

func TestImportCurlPathSingleFileGetRequest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "get-me.curl")
	if err := os.WriteFile(path, []byte(`curl -H "Accept: application/json" https://api.example.com/me`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	idx, err := ImportCurlPath(path, "Demo", DefaultCurlMaxDepth)
	if err != nil {
		t.Fatalf("ImportCurlPath: %v", err)
	}
	if len(idx.Collection.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(idx.Collection.Requests))
	}
	r := idx.Collection.Requests[0]
	if r.Name != "get-me" {
		t.Fatalf("got name %q", r.Name)
	}
	if r.Method != "GET" {
		t.Fatalf("got method %q", r.Method)
	}
	if r.URL != "https://api.example.com/me" {
		t.Fatalf("got URL %q", r.URL)
	}
	found := false
	for _, h := range r.Headers {
		if h.Key == "Accept" && h.Value == "application/json" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Accept header preserved, got %+v", r.Headers)
	}
}

func TestImportCurlPathInfersPostFromBodyAndJSONContentType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "create.curl")
	cmd := `curl -H "Content-Type: application/json" -d '{"a":1}' https://api.example.com/items`
	if err := os.WriteFile(path, []byte(cmd), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	idx, err := ImportCurlPath(path, "Demo", DefaultCurlMaxDepth)
	if err != nil {
		t.Fatalf("ImportCurlPath: %v", err)
	}
	r := idx.Collection.Requests[0]
	if r.Method != "POST" {
		t.Fatalf("got method %q, want inferred POST", r.Method)
	}
	if r.Body.Kind != model.BodyJSON || r.Body.Text != `{"a":1}` {
		t.Fatalf("got body %+v", r.Body)
	}
}

func TestImportCurlPathAuthorizationHeaderRoutedToBearerAuth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.curl")
	cmd := `curl -H "Authorization: Bearer xyz" https://api.example.com/secure`
	if err := os.WriteFile(path, []byte(cmd), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	idx, err := ImportCurlPath(path, "Demo", DefaultCurlMaxDepth)
	if err != nil {
		t.Fatalf("ImportCurlPath: %v", err)
	}
	r := idx.Collection.Requests[0]
	if r.Auth.Kind != model.AuthBearer || r.Auth.Token != "xyz" {
		t.Fatalf("got auth %+v", r.Auth)
	}
	for _, h := range r.Headers {
		if h.Key == "Authorization" {
			t.Fatalf("expected Authorization header not to be carried through to Headers, got %+v", r.Headers)
		}
	}
}

func TestImportCurlPathBasicAuthFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "basic.curl")
	cmd := `curl -u alice:s3cret https://api.example.com/secure`
	if err := os.WriteFile(path, []byte(cmd), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	idx, err := ImportCurlPath(path, "Demo", DefaultCurlMaxDepth)
	if err != nil {
		t.Fatalf("ImportCurlPath: %v", err)
	}
	r := idx.Collection.Requests[0]
	if r.Auth.Kind != model.AuthBasic || r.Auth.Username != "alice" || r.Auth.Password != "s3cret" {
		t.Fatalf("got auth %+v", r.Auth)
	}
}

func TestImportCurlPathDirectoryWalkRespectsMaxDepth(t *testing.T) {
	root := t.TempDir()
	shallow := filepath.Join(root, "shallow.curl")
	if err := os.WriteFile(shallow, []byte(`curl https://x/shallow`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	deepDir := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deepDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	deep := filepath.Join(deepDir, "deep.curl")
	if err := os.WriteFile(deep, []byte(`curl https://x/deep`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	idx, err := ImportCurlPath(root, "Demo", 1)
	if err != nil {
		t.Fatalf("ImportCurlPath: %v", err)
	}
	if len(idx.Collection.Requests) != 1 {
		t.Fatalf("expected only the shallow file imported at maxDepth=1, got %d requests", len(idx.Collection.Requests))
	}
	if idx.Collection.Requests[0].Name != "shallow" {
		t.Fatalf("got name %q", idx.Collection.Requests[0].Name)
	}
}

func TestImportCurlPathMissingPathFails(t *testing.T) {
	if _, err := ImportCurlPath(filepath.Join(t.TempDir(), "nope"), "Demo", DefaultCurlMaxDepth); err == nil {
		t.Fatalf("expected an error for a missing path")
	}
}

func TestImportCurlPathIgnoresNonCurlFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "req.curl"), []byte(`curl https://x/1`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	idx, err := ImportCurlPath(dir, "Demo", DefaultCurlMaxDepth)
	if err != nil {
		t.Fatalf("ImportCurlPath: %v", err)
	}
	if len(idx.Collection.Requests) != 1 {
		t.Fatalf("expected only the .curl file imported, got %d", len(idx.Collection.Requests))
	}
}

func TestSplitShellArgsHandlesQuotesAndEscapes(t *testing.T) {
	tokens, err := splitShellArgs(`curl -H "X-A: b c" -d 'raw data' https://x`)
	if err != nil {
		t.Fatalf("splitShellArgs: %v", err)
	}
	want := []string{"-H", "X-A: b c", "-d", "raw data", "https://x"}
	if len(tokens) != len(want) {
		t.Fatalf("got %+v", tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestSplitShellArgsUnterminatedQuoteFails(t *testing.T) {
	if _, err := splitShellArgs(`curl -H "unterminated`); err == nil {
		t.Fatalf("expected an unterminated-quote error")
	}
}
