package importer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"atac/internal/atacx/errs"
	"atac/internal/model"
)

// ImportOpenAPI parses an OpenAPI v3 document (JSON or YAML) and fabricates
// one Request per path x operation (§4.8).
func ImportOpenAPI(data []byte, collectionName string) (*CollectionIndex, error) {
	doc, err := decodeGeneric(data)
	if err != nil {
		return nil, errs.New(errs.KindIO, "import_openapi", collectionName, fmt.Errorf("CorruptFile: %w", err))
	}

	name := collectionName
	if info, ok := asMap(doc["info"]); ok {
		if n, ok := info["title"].(string); ok && n != "" {
			name = n
		}
	}
	col := &model.Collection{Name: name, Format: model.FormatJSON, Selected: -1}
	idx := &CollectionIndex{Collection: col}

	paths, _ := asMap(doc["paths"])
	pathKeys := sortedKeys(paths)
	for _, p := range pathKeys {
		pathItem, _ := asMap(paths[p])
		for _, method := range []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"} {
			opRaw, ok := pathItem[method]
			if !ok {
				continue
			}
			op, _ := asMap(opRaw)
			req, warns := operationToRequest(doc, p, method, op, pathItem)
			req.Name = col.UniqueRequestName(req.Name)
			col.Requests = append(col.Requests, req)
			idx.Warnings = append(idx.Warnings, warns...)
		}
	}

	return idx, nil
}

func decodeGeneric(data []byte) (map[string]any, error) {
	var v map[string]any
	if json.Valid(data) {
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalizeYAMLMap(v), nil
}

// normalizeYAMLMap returns v as a map[string]any, or an empty map when v is
// not one. yaml.v3 already decodes string-keyed mappings as map[string]any,
// so no key conversion is done.
func normalizeYAMLMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	if m == nil {
		return map[string]any{}
	}
	return m
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// resolveRef resolves a single-level "#/components/..." reference against
// doc. A $ref that itself points to another $ref returns ok=false, as does a
// ref that does not resolve to an object. Callers return no error for it: a
// parameter is skipped with an "unsupported nested $ref" warning, a request
// body is left empty, and a schema sample becomes nil.
func resolveRef(doc map[string]any, ref string) (map[string]any, bool) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}
	parts := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	var cur any = doc
	for _, p := range parts {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	resolved, ok := asMap(cur)
	if !ok {
		return nil, false
	}
	if _, isRef := resolved["$ref"]; isRef {
		return nil, false // nested reference: unsupported.
	}
	return resolved, true
}

func derefOrSelf(doc, m map[string]any) (map[string]any, bool) {
	if ref, ok := m["$ref"].(string); ok {
		return resolveRef(doc, ref)
	}
	return m, true
}

func operationToRequest(doc map[string]any, path, method string, op, pathItem map[string]any) (*model.Request, []string) {
	var warnings []string

	opID, _ := op["operationId"].(string)
	name := opID
	if name == "" {
		name = strings.ToUpper(method) + " " + path
	}

	r := newRequest(name)
	r.Method = strings.ToUpper(method)
	r.URL = path

	params := collectParams(pathItem["parameters"])
	params = append(params, collectParams(op["parameters"])...)

	for _, p := range params {
		pm, ok := derefOrSelf(doc, p)
		if !ok {
			warnings = append(warnings, "unsupported nested $ref in parameter")
			continue
		}
		pname, _ := pm["name"].(string)
		in, _ := pm["in"].(string)
		def := ""
		if schema, ok := asMap(pm["schema"]); ok {
			if d, ok := schema["default"]; ok {
				def = fmt.Sprintf("%v", d)
			}
		}
		switch in {
		case "path":
			r.Params = append(r.Params, model.KVEntry{Key: "{" + pname + "}", Value: def, Enabled: true})
		case "query":
			r.Params = append(r.Params, model.KVEntry{Key: pname, Value: def, Enabled: true})
		case "header":
			r.Headers = append(r.Headers, model.KVEntry{Key: pname, Value: def, Enabled: true})
		}
	}

	if rb, ok := asMap(op["requestBody"]); ok {
		rb, _ = derefOrSelf(doc, rb)
		if content, ok := asMap(rb["content"]); ok {
			r.Body, warnings = bodyFromContent(doc, content, warnings)
		}
	}

	for _, sec := range securitySchemesFor(doc, op) {
		applySecurityScheme(r, sec)
	}

	return r, warnings
}

func collectParams(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range arr {
		if m, ok := asMap(item); ok {
			out = append(out, m)
		}
	}
	return out
}

var mediaPriority = []string{"application/json", "application/xml", "multipart/form-data", "application/x-www-form-urlencoded", "text/plain", "text/html", "application/javascript"}

func bodyFromContent(doc map[string]any, content map[string]any, warnings []string) (model.Body, []string) {
	var mediaType string
	for _, mt := range mediaPriority {
		if _, ok := content[mt]; ok {
			mediaType = mt
			break
		}
	}
	if mediaType == "" {
		for k := range content {
			mediaType = k
			break
		}
	}
	if mediaType == "" {
		return model.Body{Kind: model.BodyNone}, warnings
	}

	mediaObj, _ := asMap(content[mediaType])
	schema, _ := asMap(mediaObj["schema"])
	var sample any
	if example, ok := mediaObj["example"]; ok {
		sample = example
	} else if schema != nil {
		sample = sampleFromSchema(doc, schema, 0)
	}

	switch mediaType {
	case "application/json":
		data, _ := json.Marshal(sample)
		return model.Body{Kind: model.BodyJSON, Text: string(data)}, warnings
	case "application/xml":
		return model.Body{Kind: model.BodyXML, Text: fmt.Sprintf("%v", sample)}, warnings
	case "multipart/form-data":
		return model.Body{Kind: model.BodyMultipart, Entries: entriesFromSchema(schema)}, warnings
	case "application/x-www-form-urlencoded":
		return model.Body{Kind: model.BodyForm, Entries: entriesFromSchema(schema)}, warnings
	case "text/plain":
		return model.Body{Kind: model.BodyRaw, Text: fmt.Sprintf("%v", sample)}, warnings
	case "text/html":
		return model.Body{Kind: model.BodyHTML, Text: fmt.Sprintf("%v", sample)}, warnings
	case "application/javascript":
		return model.Body{Kind: model.BodyJavascript, Text: fmt.Sprintf("%v", sample)}, warnings
	default:
		return model.Body{Kind: model.BodyNone}, append(warnings, fmt.Sprintf("unsupported media type %q", mediaType))
	}
}

func entriesFromSchema(schema map[string]any) model.KVList {
	var entries model.KVList
	props, _ := asMap(schema["properties"])
	for _, k := range sortedKeys(props) {
		pm, _ := asMap(props[k])
		v := sampleFromSchema(nil, pm, 1)
		entries = append(entries, model.KVEntry{Key: k, Value: fmt.Sprintf("%v", v), Enabled: true})
	}
	return entries
}

// sampleFromSchema recursively walks a schema producing a representative
// value: enum/oneOf/anyOf/allOf take the first member, example/default
// take priority over a synthesized value, per §4.8 and SPEC_FULL §C.5.
func sampleFromSchema(doc map[string]any, schema map[string]any, depth int) any {
	if schema == nil || depth > 12 {
		return nil
	}
	if doc != nil {
		if resolved, ok := derefOrSelf(doc, schema); ok {
			schema = resolved
		} else {
			return nil
		}
	}
	if ex, ok := schema["example"]; ok {
		return ex
	}
	if def, ok := schema["default"]; ok {
		return def
	}
	if enum, ok := schema["enum"].([]any); ok && len(enum) > 0 {
		return enum[0]
	}
	for _, combinator := range []string{"oneOf", "anyOf", "allOf"} {
		if arr, ok := schema[combinator].([]any); ok && len(arr) > 0 {
			if m, ok := asMap(arr[0]); ok {
				return sampleFromSchema(doc, m, depth+1)
			}
		}
	}

	t, _ := schema["type"].(string)
	switch t {
	case "object":
		out := map[string]any{}
		props, _ := asMap(schema["properties"])
		for _, k := range sortedKeys(props) {
			pm, _ := asMap(props[k])
			out[k] = sampleFromSchema(doc, pm, depth+1)
		}
		return out
	case "array":
		items, _ := asMap(schema["items"])
		return []any{sampleFromSchema(doc, items, depth+1)}
	case "integer":
		return 0
	case "number":
		return 0.0
	case "boolean":
		return false
	case "string":
		return ""
	default:
		return nil
	}
}

func securitySchemesFor(doc map[string]any, op map[string]any) []map[string]any {
	sec, ok := op["security"].([]any)
	if !ok {
		return nil
	}
	components, _ := asMap(doc["components"])
	schemes, _ := asMap(components["securitySchemes"])
	var out []map[string]any
	for _, entry := range sec {
		em, ok := asMap(entry)
		if !ok {
			continue
		}
		for name := range em {
			if sm, ok := asMap(schemes[name]); ok {
				out = append(out, sm)
			}
		}
	}
	return out
}

// applySecurityScheme maps API-key header/query directly; HTTP basic/bearer
// map to placeholder Basic/Bearer auth; OAuth2/OpenID are ignored (§4.8).
func applySecurityScheme(r *model.Request, scheme map[string]any) {
	kind, _ := scheme["type"].(string)
	switch kind {
	case "apiKey":
		name, _ := scheme["name"].(string)
		in, _ := scheme["in"].(string)
		switch in {
		case "header":
			r.Headers = append(r.Headers, model.KVEntry{Key: name, Value: "", Enabled: true})
		case "query":
			r.Params = append(r.Params, model.KVEntry{Key: name, Value: "", Enabled: true})
		}
	case "http":
		scheme2, _ := scheme["scheme"].(string)
		switch scheme2 {
		case "basic":
			if r.Auth.Kind == model.AuthNone || r.Auth.Kind == "" {
				r.Auth = model.Auth{Kind: model.AuthBasic}
			}
		case "bearer":
			if r.Auth.Kind == model.AuthNone || r.Auth.Kind == "" {
				r.Auth = model.Auth{Kind: model.AuthBearer}
			}
		}
	case "oauth2", "openIdConnect":
		// ignored per §4.8.
	}
}
