package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"atac/internal/atacx/errs"
	"atac/internal/model"
)

// postmanCollection mirrors the subset of the Postman v2.1 schema §4.8
// requires.
type postmanCollection struct {
	Info struct {
		Name string `json:"name"`
	} `json:"info"`
	Item []postmanItem `json:"item"`
}

type postmanItem struct {
	Name    string          `json:"name"`
	Item    []postmanItem   `json:"item"`
	Request *postmanRequest `json:"request"`
	Event   []postmanEvent  `json:"event"`
}

type postmanEvent struct {
	Listen string `json:"listen"`
	Script struct {
		Exec []string `json:"exec"`
	} `json:"script"`
}

type postmanRequest struct {
	Method string      `json:"method"`
	Header []postmanKV `json:"header"`
	URL    json.RawMessage `json:"url"`
	Auth   *postmanAuth `json:"auth"`
	Body   *postmanBody `json:"body"`
	ProtocolProfileBehavior map[string]any `json:"protocolProfileBehavior"`
}

type postmanKV struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

type postmanAuth struct {
	Type   string `json:"type"`
	Basic  []postmanKV `json:"basic"`
	Bearer []postmanKV `json:"bearer"`
}

type postmanBody struct {
	Mode       string      `json:"mode"`
	Raw        string      `json:"raw"`
	Formdata   []postmanKV `json:"formdata"`
	Urlencoded []postmanKV `json:"urlencoded"`
	File       struct {
		Src string `json:"src"`
	} `json:"file"`
}

type postmanURLObject struct {
	Raw   string      `json:"raw"`
	Query []postmanKV `json:"query"`
}

// ImportPostman parses a Postman v2.1 collection document and returns the
// equivalent native collection (§4.8). Folders below maxDepth flatten into
// the collection with nested folder names prefixed onto the request name.
func ImportPostman(data []byte, name string, maxDepth int) (*CollectionIndex, error) {
	var doc postmanCollection
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.New(errs.KindIO, "import_postman", name, fmt.Errorf("CorruptFile: %w", err))
	}
	colName := doc.Info.Name
	if colName == "" {
		colName = name
	}
	col := &model.Collection{Name: colName, Format: model.FormatJSON, Selected: -1}
	idx := &CollectionIndex{Collection: col}

	walkPostmanItems(doc.Item, "", 0, maxDepth, col, idx)
	return idx, nil
}

func walkPostmanItems(items []postmanItem, prefix string, depth, maxDepth int, col *model.Collection, idx *CollectionIndex) {
	for _, item := range items {
		if item.Request == nil {
			childPrefix := prefix
			if depth < maxDepth {
				if childPrefix != "" {
					childPrefix += " / "
				}
				childPrefix += item.Name
			} else {
				idx.Warnings = append(idx.Warnings, fmt.Sprintf("folder %q flattened at max depth %d", item.Name, maxDepth))
			}
			walkPostmanItems(item.Item, childPrefix, depth+1, maxDepth, col, idx)
			continue
		}
		name := item.Name
		if prefix != "" {
			name = prefix + " / " + name
		}
		req := postmanToRequest(name, item, idx)
		req.Name = col.UniqueRequestName(req.Name)
		col.Requests = append(col.Requests, req)
	}
}

func postmanToRequest(name string, item postmanItem, idx *CollectionIndex) *model.Request {
	r := newRequest(name)
	pr := item.Request
	if pr.Method != "" {
		r.Method = strings.ToUpper(pr.Method)
	}

	for _, h := range pr.Header {
		r.Headers = append(r.Headers, model.KVEntry{Key: h.Key, Value: h.Value, Enabled: !h.Disabled})
	}
	// Default-header injection is kept as the source behaves: every imported
	// request gets defaultHeaders prepended. DESIGN.md records the decision.
	withDefaultHeaders(r)

	r.URL, r.Params = postmanURL(pr.URL)

	r.Auth = postmanToAuth(pr.Auth)
	r.Body = postmanToBody(pr.Body, idx)

	for _, ev := range item.Event {
		if ev.Listen == "prerequest" {
			r.PreRequestScript = strings.Join(ev.Script.Exec, "\n")
		}
		if ev.Listen == "test" {
			r.PostRequestScript = strings.Join(ev.Script.Exec, "\n")
		}
	}

	if pr.ProtocolProfileBehavior != nil {
		if v, ok := pr.ProtocolProfileBehavior["disableBodyPruning"].(bool); ok {
			_ = v // read but not mapped to any setting.
		}
	}

	return r
}

func postmanURL(raw json.RawMessage) (string, model.KVList) {
	if len(raw) == 0 {
		return "", nil
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}
	var obj postmanURLObject
	if err := json.Unmarshal(raw, &obj); err == nil {
		var params model.KVList
		for _, q := range obj.Query {
			params = append(params, model.KVEntry{Key: q.Key, Value: q.Value, Enabled: !q.Disabled})
		}
		return obj.Raw, params
	}
	return "", nil
}

// postmanToAuth maps Basic/Bearer only; every other Postman auth type
// becomes NoAuth (§4.8).
func postmanToAuth(a *postmanAuth) model.Auth {
	if a == nil {
		return model.Auth{Kind: model.AuthNone}
	}
	lookup := func(kvs []postmanKV, key string) string {
		for _, kv := range kvs {
			if kv.Key == key {
				return kv.Value
			}
		}
		return ""
	}
	switch a.Type {
	case "basic":
		return model.Auth{Kind: model.AuthBasic, Username: lookup(a.Basic, "username"), Password: lookup(a.Basic, "password")}
	case "bearer":
		return model.Auth{Kind: model.AuthBearer, Token: lookup(a.Bearer, "token")}
	default:
		return model.Auth{Kind: model.AuthNone}
	}
}

func postmanToBody(b *postmanBody, idx *CollectionIndex) model.Body {
	if b == nil {
		return model.Body{Kind: model.BodyNone}
	}
	switch b.Mode {
	case "raw":
		return model.Body{Kind: model.BodyRaw, Text: b.Raw}
	case "formdata":
		var entries model.KVList
		for _, kv := range b.Formdata {
			entries = append(entries, model.KVEntry{Key: kv.Key, Value: kv.Value, Enabled: !kv.Disabled})
		}
		return model.Body{Kind: model.BodyMultipart, Entries: entries}
	case "urlencoded":
		var entries model.KVList
		for _, kv := range b.Urlencoded {
			entries = append(entries, model.KVEntry{Key: kv.Key, Value: kv.Value, Enabled: !kv.Disabled})
		}
		return model.Body{Kind: model.BodyForm, Entries: entries}
	case "file":
		return model.Body{Kind: model.BodyFile, Path: b.File.Src}
	default:
		if idx != nil && b.Mode != "" {
			idx.Warnings = append(idx.Warnings, fmt.Sprintf("unsupported postman body mode %q", b.Mode))
		}
		return model.Body{Kind: model.BodyNone}
	}
}
