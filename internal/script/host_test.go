package script

import (
	"strings"
	"testing"
)

func TestRunPreMutatesURL(t *testing.T) {
	req := map[string]any{"url": "https://api.example.com"}
	res, err := RunPre(`request.url = request.url + "?traced=1"; console.log("tagged");`, req, map[string]string{})
	if err != nil {
		t.Fatalf("RunPre: %v", err)
	}
	if res.Subject["url"] != "https://api.example.com?traced=1" {
		t.Fatalf("got url %v", res.Subject["url"])
	}
	if !strings.HasPrefix(res.Log, "tagged\n") {
		t.Fatalf("expected console output to begin with tagged, got %q", res.Log)
	}
}

func TestRunPrettyPrint(t *testing.T) {
	req := map[string]any{"a": 1}
	res, err := RunPre(`pretty_print({x: 1});`, req, map[string]string{})
	if err != nil {
		t.Fatalf("RunPre: %v", err)
	}
	if !strings.Contains(res.Log, `"x": 1`) {
		t.Fatalf("expected pretty-printed JSON in log, got %q", res.Log)
	}
}

func TestRunPostNeverOverwritesStatusOrDuration(t *testing.T) {
	resp := map[string]any{"status": "200", "duration": "15ms", "content": "body"}
	res, err := RunPost(`response.status = "HACKED"; response.duration = "0ms";`, resp, map[string]string{})
	if err != nil {
		t.Fatalf("RunPost: %v", err)
	}
	// The script CAN still mutate the deserialized view; the §4.5 contract
	// that status/duration are re-attached from the original response is
	// the caller's responsibility (the workspace's applyResponseJSON), not the host's.
	// This test documents that the host itself just reports what the
	// script did, so the caller has something to overwrite.
	if res.Subject["status"] != "HACKED" {
		t.Fatalf("expected the host to report the script's mutation verbatim")
	}
}

func TestRunScriptSyntaxErrorReturnsErrorAndOriginalEnv(t *testing.T) {
	env := map[string]string{"A": "1"}
	res, err := RunPre(`this is not valid javascript {{{`, map[string]any{}, env)
	if err == nil {
		t.Fatalf("expected a parse/execution error")
	}
	if res.Subject != nil {
		t.Fatalf("expected nil subject on failure, got %+v", res.Subject)
	}
	if res.Env["A"] != "1" {
		t.Fatalf("expected original env preserved on failure, got %+v", res.Env)
	}
}

func TestGenerateSignedJwtBridge(t *testing.T) {
	req := map[string]any{}
	script := `request.token = generate_signed_jwt("HS256", "text", "secret", {sub: "1234567890"});`
	res, err := RunPre(script, req, map[string]string{})
	if err != nil {
		t.Fatalf("RunPre: %v", err)
	}
	token, ok := res.Subject["token"].(string)
	if !ok || !strings.HasPrefix(token, "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.") {
		t.Fatalf("expected a signed HS256 token, got %v", res.Subject["token"])
	}
}

func TestNoStateLeaksBetweenInvocations(t *testing.T) {
	first, err := RunPre(`globalThis.leaked = "yes";`, map[string]any{}, map[string]string{})
	if err != nil {
		t.Fatalf("RunPre: %v", err)
	}
	_ = first
	second, err := RunPre(`request.sawLeak = (typeof leaked !== "undefined");`, map[string]any{}, map[string]string{})
	if err != nil {
		t.Fatalf("RunPre: %v", err)
	}
	if second.Subject["sawLeak"] != false {
		t.Fatalf("expected a fresh VM per call with no leaked globals, got %+v", second.Subject)
	}
}
