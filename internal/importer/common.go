// Package importer translates Postman v2.1, cURL, and OpenAPI v3 documents
// into native model.Collection graphs (§4.8).
package importer

import "atac/internal/model"

// CollectionIndex is returned by every import operation: the produced
// collection plus any non-fatal warnings encountered along the way (§6:
// "each returns Result<CollectionIndex, Error>").
type CollectionIndex struct {
	Collection *model.Collection
	Warnings   []string
}

// defaultHeaders is the workspace default header set Postman import
// prepends to every imported request (§4.8, §9 open question — preserved
// as specified; see DESIGN.md for the decision record).
var defaultHeaders = []string{"cache-control", "user-agent", "accept", "accept-encoding", "connection"}

func newRequest(name string) *model.Request {
	return &model.Request{
		Name:     name,
		Protocol: model.ProtocolHTTP,
		Method:   "GET",
		Settings: model.DefaultRequestSettings(),
	}
}

func withDefaultHeaders(r *model.Request) {
	existing := map[string]bool{}
	for _, h := range r.Headers {
		existing[h.Key] = true
	}
	var prefix model.KVList
	for _, name := range defaultHeaders {
		if !existing[name] {
			prefix = append(prefix, model.KVEntry{Key: name, Value: "", Enabled: true})
		}
	}
	r.Headers = append(prefix, r.Headers...)
}
