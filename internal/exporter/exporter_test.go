package exporter

import (
	"strings"
	"testing"

	"atac/internal/model"
)

func basicGetRequest() *model.Request {
	return &model.Request{
		Name:     "get-me",
		Method:   "GET",
		URL:      "https://{{HOST}}/v1/me?x=1",
		Protocol: model.ProtocolHTTP,
		Auth:     model.Auth{Kind: model.AuthBearer, Token: "{{TOK}}"},
		Settings: model.DefaultRequestSettings(),
	}
}

func basicEnv() *model.Environment {
	env := &model.Environment{}
	env.Set("HOST", "api.example.com")
	env.Set("TOK", "xyz")
	return env
}

func TestExportHTTPResolvesVariablesAndAuth(t *testing.T) {
	out, err := Export(basicGetRequest(), basicEnv(), FormatHTTP)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(out, "GET /v1/me?x=1 HTTP/1.1\r\n") {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(out, "Host: api.example.com\r\n") {
		t.Fatalf("missing Host header, got %q", out)
	}
	if !strings.Contains(out, "Authorization: Bearer xyz\r\n") {
		t.Fatalf("missing Authorization header, got %q", out)
	}
}

func TestExportCurlIncludesHeaderAndAuth(t *testing.T) {
	out, err := Export(basicGetRequest(), basicEnv(), FormatCurl)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(out, "curl --location --request GET 'https://api.example.com/v1/me?x=1'") {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(out, "--header 'Authorization: Bearer xyz'") {
		t.Fatalf("missing auth header, got %q", out)
	}
}

func TestExportPhpGuzzleJSONBody(t *testing.T) {
	req := basicGetRequest()
	req.Method = "POST"
	req.Body = model.Body{Kind: model.BodyJSON, Text: `{"a":1}`}
	out, err := Export(req, basicEnv(), FormatPhpGuzzle)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out, "GuzzleHttp\\Client") {
		t.Fatalf("missing Guzzle client construction, got %q", out)
	}
	if !strings.Contains(out, "'json' => json_decode($body, true)") {
		t.Fatalf("expected json option wired for a JSON body, got %q", out)
	}
}

func TestExportNodeAxiosFormBody(t *testing.T) {
	req := basicGetRequest()
	req.Method = "POST"
	req.Body = model.Body{Kind: model.BodyForm, Entries: model.KVList{{Key: "a", Value: "1", Enabled: true}}}
	out, err := Export(req, basicEnv(), FormatNodeAxios)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out, "require('axios')") {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(out, `data.append("a", "1")`) {
		t.Fatalf("expected form param appended, got %q", out)
	}
}

func TestExportRustReqwestJSONBody(t *testing.T) {
	req := basicGetRequest()
	req.Method = "POST"
	req.Body = model.Body{Kind: model.BodyJSON, Text: `{"a":1}`}
	out, err := Export(req, basicEnv(), FormatRustReqwest)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out, "reqwest::Client") {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(out, "request.json(&body)") {
		t.Fatalf("expected json body wiring, got %q", out)
	}
}

func TestExportRustReqwestWebSocket(t *testing.T) {
	req := &model.Request{
		Method:   "GET",
		URL:      "wss://{{HOST}}/socket",
		Protocol: model.ProtocolWebSocket,
		Settings: model.DefaultRequestSettings(),
	}
	out, err := Export(req, basicEnv(), FormatRustReqwest)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out, "connect_async") {
		t.Fatalf("expected tokio-tungstenite usage, got %q", out)
	}
}

func TestExportWebSocketRejectsNonRustFormats(t *testing.T) {
	req := &model.Request{
		Method:   "GET",
		URL:      "wss://example.com/socket",
		Protocol: model.ProtocolWebSocket,
		Settings: model.DefaultRequestSettings(),
	}
	if _, err := Export(req, &model.Environment{}, FormatCurl); err == nil {
		t.Fatalf("expected ExportFormatNotSupported for websocket+curl")
	}
}

func TestExportInvalidURLFails(t *testing.T) {
	req := basicGetRequest()
	req.URL = "http://%zz"
	if _, err := Export(req, basicEnv(), FormatHTTP); err == nil {
		t.Fatalf("expected an error for an invalid URL")
	}
}

func TestExportMultipartWithFileAcrossFormats(t *testing.T) {
	req := basicGetRequest()
	req.Method = "POST"
	req.Body = model.Body{
		Kind: model.BodyMultipart,
		Entries: model.KVList{
			{Key: "field", Value: "hello", Enabled: true},
			{Key: "upload", Value: model.FilePrefix + "/tmp/x.bin", Enabled: true},
		},
	}
	env := basicEnv()

	curlOut, err := Export(req, env, FormatCurl)
	if err != nil {
		t.Fatalf("Export curl: %v", err)
	}
	if !strings.Contains(curlOut, `--form 'upload=@"/tmp/x.bin"'`) {
		t.Fatalf("got %q", curlOut)
	}

	rustOut, err := Export(req, env, FormatRustReqwest)
	if err != nil {
		t.Fatalf("Export rust: %v", err)
	}
	if !strings.Contains(rustOut, `form.file("upload", "/tmp/x.bin")`) {
		t.Fatalf("got %q", rustOut)
	}
}
