package exporter

import (
	"fmt"
	"strings"

	"atac/internal/model"
)

// exportRustReqwest renders a Rust reqwest snippet, the other format §9
// flags as half-finished in the source. It is also the only format that
// may export a WebSocket request (§4.9), via tokio-tungstenite.
func exportRustReqwest(req *model.Request, r *resolved) string {
	if req.Protocol == model.ProtocolWebSocket {
		return exportRustWebSocket(r)
	}

	var b strings.Builder
	b.WriteString("use reqwest::Client;\n\n")
	b.WriteString("#[tokio::main]\n")
	b.WriteString("async fn main() -> Result<(), Box<dyn std::error::Error>> {\n")
	b.WriteString("    let client = Client::new();\n")
	fmt.Fprintf(&b, "    let mut request = client.request(reqwest::Method::%s, %q);\n", strings.ToUpper(r.method), r.url)

	for _, h := range r.headers {
		fmt.Fprintf(&b, "    request = request.header(%q, %q);\n", h.Key, h.Value)
	}
	if r.authHdr != "" {
		fmt.Fprintf(&b, "    request = request.header(\"Authorization\", %q);\n", r.authHdr)
	}

	switch r.body.Kind {
	case model.BodyJSON:
		fmt.Fprintf(&b, "    let body: serde_json::Value = serde_json::from_str(%q)?;\n", r.body.Text)
		b.WriteString("    request = request.json(&body);\n")
	case model.BodyForm:
		b.WriteString("    let form = [\n")
		for _, e := range r.body.Entries.Enabled() {
			fmt.Fprintf(&b, "        (%q, %q),\n", e.Key, e.Value)
		}
		b.WriteString("    ];\n")
		b.WriteString("    request = request.form(&form);\n")
	case model.BodyMultipart:
		b.WriteString("    let mut form = reqwest::multipart::Form::new();\n")
		for _, e := range r.body.Entries.Enabled() {
			if path, ok := model.IsFileValue(e.Value); ok {
				fmt.Fprintf(&b, "    form = form.file(%q, %q).await?;\n", e.Key, path)
			} else {
				fmt.Fprintf(&b, "    form = form.text(%q, %q);\n", e.Key, e.Value)
			}
		}
		b.WriteString("    request = request.multipart(form);\n")
	case model.BodyRaw, model.BodyXML, model.BodyHTML, model.BodyJavascript:
		fmt.Fprintf(&b, "    request = request.body(%q);\n", r.body.Text)
	}

	b.WriteString("    let response = request.send().await?;\n")
	b.WriteString("    println!(\"{}\", response.text().await?);\n")
	b.WriteString("    Ok(())\n")
	b.WriteString("}\n")
	return b.String()
}

func exportRustWebSocket(r *resolved) string {
	var b strings.Builder
	b.WriteString("use tokio_tungstenite::connect_async;\n")
	b.WriteString("use futures_util::{SinkExt, StreamExt};\n\n")
	b.WriteString("#[tokio::main]\n")
	b.WriteString("async fn main() -> Result<(), Box<dyn std::error::Error>> {\n")
	fmt.Fprintf(&b, "    let (mut ws, _) = connect_async(%q).await?;\n", r.url)
	b.WriteString("    while let Some(msg) = ws.next().await {\n")
	b.WriteString("        println!(\"{:?}\", msg?);\n")
	b.WriteString("    }\n")
	b.WriteString("    Ok(())\n")
	b.WriteString("}\n")
	return b.String()
}
