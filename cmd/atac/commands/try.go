package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"atac/internal/cookies"
	"atac/internal/httpexec"
	"atac/internal/model"
)

// headerFlags collects repeated "-H Key: Value" flags, curl-style.
type headerFlags struct{ list model.KVList }

func (h *headerFlags) String() string { return "" }

func (h *headerFlags) Set(s string) error {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected \"Key: Value\", got %q", s)
	}
	h.list = append(h.list, model.KVEntry{
		Key: strings.TrimSpace(parts[0]), Value: strings.TrimSpace(parts[1]), Enabled: true,
	})
	return nil
}

// Try executes a one-off request outside of any saved collection, the way
// curl runs a single request without a config file.
func Try(args []string) {
	if len(args) < 2 {
		printUsage("usage: atac try <METHOD> <URL> [-H \"Key: Value\"]... [--data TEXT] [--timeout 30s] [--insecure]")
		return
	}
	method, url, rest := args[0], args[1], args[2:]

	fs := flag.NewFlagSet("try", flag.ExitOnError)
	var headers headerFlags
	fs.Var(&headers, "H", "a request header, repeatable")
	data := fs.String("data", "", "request body text")
	timeout := fs.Duration("timeout", model.DefaultRequestSettings().Timeout, "request timeout")
	insecure := fs.Bool("insecure", false, "skip TLS certificate verification")
	fs.Parse(rest)

	req := &model.Request{
		Name:     "try",
		URL:      url,
		Method:   strings.ToUpper(method),
		Protocol: model.ProtocolHTTP,
		Headers:  headers.list,
		Settings: model.DefaultRequestSettings(),
	}
	req.Settings.Timeout = *timeout
	req.Settings.AcceptInvalidCerts = *insecure
	req.Settings.AcceptInvalidHostnames = *insecure
	if *data != "" {
		req.Body = model.Body{Kind: model.BodyRaw, Text: *data}
	}

	store, err := cookies.New()
	if err != nil {
		fatal(err)
	}
	ex := httpexec.New(store)
	resp, err := ex.Execute(context.Background(), req, nil)
	if err != nil {
		fatal(err)
	}
	printResponseSummary(resp)
}
