package exporter

import (
	"fmt"
	"strings"

	"atac/internal/model"
)

func exportCurl(req *model.Request, r *resolved) string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl --location --request %s '%s'", r.method, r.url)

	for _, h := range r.headers {
		fmt.Fprintf(&b, " \\\n--header '%s: %s'", h.Key, h.Value)
	}
	if r.authHdr != "" {
		fmt.Fprintf(&b, " \\\n--header 'Authorization: %s'", r.authHdr)
	}

	if req.Settings.UseConfigProxy {
		b.WriteString(" \\\n--proxy '$HTTP_PROXY'")
	}

	writeCurlBody(&b, r.body)

	return b.String()
}

func writeCurlBody(b *strings.Builder, body model.Body) {
	switch body.Kind {
	case model.BodyMultipart:
		for _, e := range body.Entries.Enabled() {
			if path, ok := model.IsFileValue(e.Value); ok {
				fmt.Fprintf(b, " \\\n--form '%s=@\"%s\"'", e.Key, path)
			} else {
				fmt.Fprintf(b, " \\\n--form '%s=\"%s\"'", e.Key, e.Value)
			}
		}
	case model.BodyForm:
		for _, e := range body.Entries.Enabled() {
			fmt.Fprintf(b, " \\\n--data-urlencode '%s=%s'", e.Key, e.Value)
		}
	case model.BodyFile:
		fmt.Fprintf(b, " \\\n--data-binary '@%s'", body.Path)
	case model.BodyRaw, model.BodyJSON, model.BodyXML, model.BodyHTML, model.BodyJavascript:
		fmt.Fprintf(b, " \\\n--header 'Content-Type: %s'", body.ContentType())
		fmt.Fprintf(b, " \\\n--data-raw '%s'", body.Text)
	}
}
