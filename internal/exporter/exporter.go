// Package exporter implements the Exporters component (§4.9): given a
// Request and a format, produce a string — HTTP wire format, cURL, or a
// source snippet in one of three target languages.
package exporter

import (
	"fmt"
	"strings"

	"atac/internal/atacx/errs"
	"atac/internal/auth"
	"atac/internal/httpexec"
	"atac/internal/model"
	"atac/internal/variables"
)

// Format enumerates the export targets named in §4.9 (the ExportFormat
// tagged union, §9).
type Format string

const (
	FormatHTTP         Format = "http"
	FormatCurl         Format = "curl"
	FormatPhpGuzzle    Format = "php_guzzle"
	FormatNodeAxios    Format = "node_axios"
	FormatRustReqwest  Format = "rust_reqwest"
)

// resolved is the common preamble every format builds from: resolved
// variables, final URL with query parameters, enumerated headers (§4.9).
type resolved struct {
	method  string
	url     string
	headers model.KVList
	body    model.Body
	authHdr string
}

func resolve(req *model.Request, env *model.Environment) (*resolved, error) {
	r := variables.New()
	rawURL := r.Resolve(req.URL, env)
	headers := r.ResolveKV(req.Headers, env)
	params := r.ResolveKV(req.Params, env)

	pathParams, queryParams := httpexec.SplitParams(params.Enabled())
	rawURL = httpexec.SubstitutePathParams(rawURL, pathParams)

	u, err := httpexec.BuildURL(rawURL, queryParams)
	if err != nil {
		return nil, errs.Validation("export", req.Name, fmt.Errorf("invalid url: %w", err))
	}

	body := req.Body
	body.Entries = r.ResolveKV(body.Entries, env)
	body.Text = r.Resolve(body.Text, env)

	method := req.Method
	if method == "" {
		method = "GET"
	}

	authHdr := authHeader(req.Auth)

	return &resolved{method: method, url: u.String(), headers: headers.Enabled(), body: body, authHdr: authHdr}, nil
}

func authHeader(a model.Auth) string {
	switch a.Kind {
	case model.AuthBasic:
		return auth.BasicHeader(a.Username, a.Password)
	case model.AuthBearer:
		return auth.BearerHeader(a.Token)
	case model.AuthJWT:
		token, err := auth.EncodeJWT(a.JWT)
		if err != nil {
			return ""
		}
		return auth.BearerHeader(token)
	default:
		return ""
	}
}

// Export dispatches to the format-specific renderer (§4.9). WebSocket
// requests may export only as RustReqwest; other formats return
// ExportFormatNotSupported per the protocol check below.
func Export(req *model.Request, env *model.Environment, format Format) (string, error) {
	if req.Protocol == model.ProtocolWebSocket && format != FormatRustReqwest {
		return "", errs.Unsupported("export", string(format), fmt.Errorf("ExportFormatNotSupported(websocket)"))
	}

	r, err := resolve(req, env)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatHTTP:
		return exportHTTP(req, r), nil
	case FormatCurl:
		return exportCurl(req, r), nil
	case FormatPhpGuzzle:
		return exportPhpGuzzle(req, r), nil
	case FormatNodeAxios:
		return exportNodeAxios(req, r), nil
	case FormatRustReqwest:
		return exportRustReqwest(req, r), nil
	default:
		return "", errs.Unsupported("export", string(format), fmt.Errorf("unknown export format"))
	}
}

func hostOf(rawURL string) string {
	noScheme := rawURL
	if idx := strings.Index(rawURL, "://"); idx >= 0 {
		noScheme = rawURL[idx+3:]
	}
	if idx := strings.IndexAny(noScheme, "/?"); idx >= 0 {
		noScheme = noScheme[:idx]
	}
	return noScheme
}
