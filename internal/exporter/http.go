package exporter

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"atac/internal/model"
)

// multipartBoundary is the fixed synthetic boundary §4.9 calls for so HTTP
// export output is deterministic across runs.
const multipartBoundary = "atac-boundary-7a3f9c"

func exportHTTP(req *model.Request, r *resolved) string {
	u, _ := url.Parse(r.url)
	var b strings.Builder

	requestURI := u.RequestURI()
	fmt.Fprintf(&b, "%s %s HTTP/1.1\r\n", r.method, requestURI)
	fmt.Fprintf(&b, "Host: %s\r\n", u.Host)

	for _, h := range r.headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h.Key, h.Value)
	}
	if r.authHdr != "" {
		fmt.Fprintf(&b, "Authorization: %s\r\n", r.authHdr)
	}

	bodyBytes, contentType := httpBodyBytes(r.body)
	if contentType != "" {
		fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	}
	if len(bodyBytes) > 0 {
		fmt.Fprintf(&b, "Content-Length: %d\r\n", len(bodyBytes))
	}
	b.WriteString("\r\n")
	b.Write(bodyBytes)

	return b.String()
}

func httpBodyBytes(body model.Body) ([]byte, string) {
	switch body.Kind {
	case model.BodyMultipart:
		return multipartWireBytes(body.Entries)
	case model.BodyForm:
		values := url.Values{}
		for _, e := range body.Entries.Enabled() {
			values.Add(e.Key, e.Value)
		}
		return []byte(values.Encode()), body.ContentType()
	case model.BodyFile:
		data, _ := os.ReadFile(body.Path)
		return data, ""
	case model.BodyRaw, model.BodyJSON, model.BodyXML, model.BodyHTML, model.BodyJavascript:
		return []byte(body.Text), body.ContentType()
	default:
		return nil, ""
	}
}

// multipartWireBytes renders the same part layout BuildBody produces but
// with the fixed boundary §4.9 specifies for deterministic HTTP export,
// including embedded file contents for `!!` values.
func multipartWireBytes(entries model.KVList) ([]byte, string) {
	var buf strings.Builder
	w := multipart.NewWriter(&buf)
	w.SetBoundary(multipartBoundary)
	for _, e := range entries.Enabled() {
		if path, ok := model.IsFileValue(e.Value); ok {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			part, _ := w.CreateFormFile(e.Key, filepath.Base(path))
			part.Write(data)
			continue
		}
		w.WriteField(e.Key, e.Value)
	}
	w.Close()
	return []byte(buf.String()), w.FormDataContentType()
}
