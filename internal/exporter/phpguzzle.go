package exporter

import (
	"fmt"
	"strings"

	"atac/internal/model"
)

// exportPhpGuzzle renders a PHP Guzzle snippet. §9 notes the source's
// Guzzle exporter has half-finished branches; this implements full output
// per §4.9, treating the source gap as a bug to fix rather than replicate.
func exportPhpGuzzle(req *model.Request, r *resolved) string {
	var b strings.Builder
	b.WriteString("<?php\n\n")
	b.WriteString("require 'vendor/autoload.php';\n\n")
	b.WriteString("$client = new GuzzleHttp\\Client();\n\n")

	b.WriteString("$headers = [\n")
	for _, h := range r.headers {
		fmt.Fprintf(&b, "    '%s' => '%s',\n", h.Key, h.Value)
	}
	if r.authHdr != "" {
		fmt.Fprintf(&b, "    'Authorization' => '%s',\n", r.authHdr)
	}
	b.WriteString("];\n\n")

	options := "['headers' => $headers]"
	switch r.body.Kind {
	case model.BodyJSON:
		fmt.Fprintf(&b, "$body = %s;\n\n", phpJSONLiteral(r.body.Text))
		options = "['headers' => $headers, 'json' => json_decode($body, true)]"
	case model.BodyForm:
		b.WriteString("$formParams = [\n")
		for _, e := range r.body.Entries.Enabled() {
			fmt.Fprintf(&b, "    '%s' => '%s',\n", e.Key, e.Value)
		}
		b.WriteString("];\n\n")
		options = "['headers' => $headers, 'form_params' => $formParams]"
	case model.BodyMultipart:
		b.WriteString("$multipart = [\n")
		for _, e := range r.body.Entries.Enabled() {
			if path, ok := model.IsFileValue(e.Value); ok {
				fmt.Fprintf(&b, "    ['name' => '%s', 'contents' => fopen('%s', 'r')],\n", e.Key, path)
			} else {
				fmt.Fprintf(&b, "    ['name' => '%s', 'contents' => '%s'],\n", e.Key, e.Value)
			}
		}
		b.WriteString("];\n\n")
		options = "['headers' => $headers, 'multipart' => $multipart]"
	case model.BodyRaw, model.BodyXML, model.BodyHTML, model.BodyJavascript:
		fmt.Fprintf(&b, "$body = %s;\n\n", phpJSONLiteral(r.body.Text))
		options = "['headers' => $headers, 'body' => $body]"
	}

	fmt.Fprintf(&b, "$response = $client->request('%s', '%s', %s);\n\n", r.method, r.url, options)
	b.WriteString("echo $response->getBody();\n")
	return b.String()
}

func phpJSONLiteral(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, "\\", "\\\\"), "'", "\\'") + "'"
}
