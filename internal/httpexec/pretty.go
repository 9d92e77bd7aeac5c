package httpexec

import "encoding/json"

// prettyPrintJSON re-indents a JSON document, used by the decode phase when
// settings.pretty_print_response_content is set (§4.6).
func prettyPrintJSON(s string) (string, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s, false
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s, false
	}
	return string(data), true
}
