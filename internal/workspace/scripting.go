package workspace

import (
	"encoding/json"

	"atac/internal/model"
)

// requestToJSON/applyRequestJSON and responseToJSON/applyResponseJSON bridge
// the typed model used everywhere else in the workspace to the generic
// map[string]any view ScriptHost runs user scripts against (§4.5). The
// round trip goes through encoding/json rather than hand-written field
// copies so new Request/Response fields automatically show up to scripts.

func requestToJSON(req *model.Request) map[string]any {
	data, err := json.Marshal(req)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}

func applyRequestJSON(req *model.Request, subject map[string]any) {
	if subject == nil {
		return
	}
	data, err := json.Marshal(subject)
	if err != nil {
		return
	}
	json.Unmarshal(data, req)
}

func responseToJSON(resp *model.Response) map[string]any {
	data, err := json.Marshal(resp)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}

// applyResponseJSON applies a script's mutated view back onto resp, then
// restores status/status_code/duration from the original response, so a
// post-request script never overwrites them (§4.5).
func applyResponseJSON(resp *model.Response, subject map[string]any) {
	if subject == nil {
		return
	}
	status, code, dur, durNS := resp.Status, resp.StatusCode, resp.Duration, resp.DurationNS
	data, err := json.Marshal(subject)
	if err != nil {
		return
	}
	json.Unmarshal(data, resp)
	resp.Status, resp.StatusCode, resp.Duration, resp.DurationNS = status, code, dur, durNS
}
