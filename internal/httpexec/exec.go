// Package httpexec implements HttpExecutor (§4.6): build/dispatch/decode
// phases for a single Request, racing cancellation and timeout against the
// actual send per §5.
package httpexec

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"atac/internal/atacx/errs"
	"atac/internal/atacx/logging"
	"atac/internal/auth"
	"atac/internal/config"
	"atac/internal/cookies"
	"atac/internal/model"
	"atac/internal/variables"
)

// Executor ties together variable resolution, auth encoding, body
// construction and the dispatch/decode phases. One Executor is shared
// workspace-wide; it holds no per-request mutable state.
type Executor struct {
	Cookies  *cookies.Store
	Resolver *variables.Resolver
	Proxy    config.ProxyConfig
	Logger   logging.EventLogger
}

// New constructs an Executor with a no-op logger; callers replace Logger
// to wire in a JSONL sink.
func New(store *cookies.Store) *Executor {
	return &Executor{Cookies: store, Resolver: variables.New(), Logger: logging.NoopLogger{}}
}

// Execute runs the build/dispatch/decode pipeline for req against env, per
// §4.6; pre/post-request scripts are run by the caller (the workspace), not
// here. It never returns a Go error for ordinary HTTP or
// protocol outcomes — those become synthetic or real Response values, per
// §7 ("Cancelled/Timeout: synthetic response recorded; no error surfaced as
// exceptional"). A non-nil error indicates an abort-before-dispatch
// condition (CouldNotOpenFile, invalid auth, ...).
func (ex *Executor) Execute(ctx context.Context, req *model.Request, env *model.Environment) (*model.Response, error) {
	start := time.Now()

	// Build phase step 1: resolve variables everywhere.
	rawURL := ex.Resolver.Resolve(req.URL, env)
	headers := ex.Resolver.ResolveKV(req.Headers, env)
	params := ex.Resolver.ResolveKV(req.Params, env)

	// Step 2: split path vs query params, substitute path params into the
	// URL literal.
	pathParams, queryParams := SplitParams(params.Enabled())
	rawURL = SubstitutePathParams(rawURL, pathParams)

	// Step 3: parse the final URL.
	u, err := BuildURL(rawURL, queryParams)
	if err != nil {
		return &model.Response{Status: model.StatusInvalidURL, Duration: "0s"}, nil
	}

	body := req.Body
	body.Entries = ex.Resolver.ResolveKV(body.Entries, env)
	if body.Kind == model.BodyRaw || body.Kind == model.BodyJSON || body.Kind == model.BodyXML ||
		body.Kind == model.BodyHTML || body.Kind == model.BodyJavascript {
		body.Text = ex.Resolver.Resolve(body.Text, env)
	}

	built, err := BuildBody(body)
	if err != nil {
		return nil, err
	}

	var bodyBytesForDigest []byte
	if built != nil {
		switch br := built.Reader.(type) {
		case *bytes.Buffer:
			bodyBytesForDigest = br.Bytes()
		case *strings.Reader:
			bodyBytesForDigest, _ = io.ReadAll(br)
			br.Seek(0, io.SeekStart)
		}
		// Streamed readers (BodyFile) are left nil: auth-int with a file
		// body would require buffering the file twice, not worth it here.
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return &model.Response{Status: model.StatusInvalidURL, Duration: "0s"}, nil
	}
	if built != nil {
		httpReq.Body = io.NopCloser(built.Reader)
		if built.Length >= 0 {
			httpReq.ContentLength = built.Length
		}
		if built.ContentType != "" {
			httpReq.Header.Set("Content-Type", built.ContentType)
		}
	}

	// Step 5: auth.
	if err := ex.applyAuth(httpReq, req, bodyBytesForDigest); err != nil {
		return nil, err
	}

	// Step 7: enabled headers override auth-derived headers.
	for _, h := range headers.Enabled() {
		httpReq.Header.Set(h.Key, h.Value)
	}

	// Step 4: client settings + jar selection.
	jar := ex.jarFor(req.Settings)
	client := buildClient(req.Settings, jar, ex.Proxy)

	resp, dispatchErr := ex.dispatch(ctx, client, httpReq, req.Settings.Timeout, req.Settings.PrettyPrintResponseContent, start)
	if dispatchErr != nil {
		return dispatchErr, nil
	}
	return resp, nil
}

func (ex *Executor) jarFor(settings model.RequestSettings) http.CookieJar {
	if settings.StoreReceivedCookies && ex.Cookies != nil {
		return ex.Cookies
	}
	return cookies.Ephemeral()
}

func (ex *Executor) applyAuth(httpReq *http.Request, req *model.Request, body []byte) error {
	switch req.Auth.Kind {
	case model.AuthNone, "":
		return nil
	case model.AuthBasic:
		httpReq.Header.Set("Authorization", auth.BasicHeader(req.Auth.Username, req.Auth.Password))
		return nil
	case model.AuthBearer:
		httpReq.Header.Set("Authorization", auth.BearerHeader(req.Auth.Token))
		return nil
	case model.AuthJWT:
		token, err := auth.EncodeJWT(req.Auth.JWT)
		if err != nil {
			return err
		}
		httpReq.Header.Set("Authorization", auth.BearerHeader(token))
		return nil
	case model.AuthDigest:
		if req.Auth.Digest.Nonce == "" {
			// No challenge seen yet: send unauthenticated, matching §4.3's
			// "on the next attempt" (the caller retries after a 401 with
			// the challenge recorded via auth.ParseChallenge).
			return nil
		}
		hdr, err := auth.BuildAuthorization(&req.Auth.Digest, httpReq.Method, httpReq.URL.RequestURI(), body)
		if err != nil {
			// §7: "Digest{reason}: Falls through to unauthenticated attempt".
			return nil
		}
		httpReq.Header.Set("Authorization", hdr)
		return nil
	default:
		return errs.Unsupported("apply_auth", string(req.Auth.Kind), fmt.Errorf("unknown auth kind"))
	}
}

// dispatch races the context's cancellation, an optional timeout, and the
// actual send (§4.6 dispatch phase, §5 "first to complete wins").
func (ex *Executor) dispatch(ctx context.Context, client *http.Client, httpReq *http.Request, timeout time.Duration, pretty bool, start time.Time) (*model.Response, *model.Response) {
	dispatchCtx := ctx
	var cancelTimeout context.CancelFunc
	if timeout > 0 {
		dispatchCtx, cancelTimeout = context.WithTimeout(ctx, timeout)
		defer cancelTimeout()
	}
	httpReq = httpReq.WithContext(dispatchCtx)

	type result struct {
		resp *http.Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := client.Do(httpReq)
		done <- result{resp, err}
	}()

	ex.Logger.Log(map[string]any{"event": "request", "method": httpReq.Method, "url": httpReq.URL.String()})

	select {
	case <-dispatchCtx.Done():
		elapsed := time.Since(start)
		if dispatchCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, &model.Response{Status: model.StatusTimeout, Duration: elapsed.String(), DurationNS: elapsed.Nanoseconds()}
		}
		return nil, &model.Response{Status: model.StatusCanceled, Duration: elapsed.String(), DurationNS: elapsed.Nanoseconds()}
	case r := <-done:
		elapsed := time.Since(start)
		if r.err != nil {
			if dispatchCtx.Err() == context.DeadlineExceeded {
				return nil, &model.Response{Status: model.StatusTimeout, Duration: elapsed.String(), DurationNS: elapsed.Nanoseconds()}
			}
			if ctx.Err() != nil {
				return nil, &model.Response{Status: model.StatusCanceled, Duration: elapsed.String(), DurationNS: elapsed.Nanoseconds()}
			}
			ex.Logger.Log(map[string]any{"event": "error", "error": r.err.Error()})
			return &model.Response{Status: "ERROR", Duration: elapsed.String(), DurationNS: elapsed.Nanoseconds()}, nil
		}
		resp := ex.decode(r.resp, elapsed, pretty)
		ex.Logger.Log(map[string]any{"event": "response", "status": resp.StatusCode})
		return resp, nil
	}
}

// decode implements §4.6's decode phase.
func (ex *Executor) decode(httpResp *http.Response, elapsed time.Duration, pretty bool) *model.Response {
	defer httpResp.Body.Close()

	resp := &model.Response{
		Status:     httpResp.Status,
		StatusCode: httpResp.StatusCode,
		Duration:   elapsed.String(),
		DurationNS: elapsed.Nanoseconds(),
	}

	for k, vv := range httpResp.Header {
		for _, v := range vv {
			resp.Headers = append(resp.Headers, model.KVEntry{Key: k, Value: v, Enabled: true})
		}
	}

	var cookieSummary strings.Builder
	for _, c := range httpResp.Cookies() {
		if cookieSummary.Len() > 0 {
			cookieSummary.WriteString("; ")
		}
		cookieSummary.WriteString(c.Name + "=" + c.Value)
	}
	resp.Cookies = cookieSummary.String()

	contentType := httpResp.Header.Get("Content-Type")
	data, _ := io.ReadAll(httpResp.Body)

	if strings.HasPrefix(contentType, "image/") {
		resp.Content = decodeImage(data)
		return resp
	}

	resp.Content = decodeText(data, contentType, pretty)
	return resp
}

func decodeImage(data []byte) model.ResponseContent {
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return model.ResponseContent{Kind: model.ContentImage, Bytes: data}
	}
	return model.ResponseContent{Kind: model.ContentImage, Bytes: data, ImageFormat: format}
}

func decodeText(data []byte, contentType string, prettyPrint bool) model.ResponseContent {
	if !utf8.Valid(data) {
		return model.ResponseContent{Kind: model.ContentText, Text: hex.Dump(data), Bytes: data}
	}
	text := string(data)
	if prettyPrint && strings.Contains(contentType, "json") {
		if pretty, ok := prettyPrintJSON(text); ok {
			text = pretty
		}
	}
	return model.ResponseContent{Kind: model.ContentText, Text: text, Bytes: data}
}
