package httpexec

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"atac/internal/model"
)

// pathParamRe matches a params-table key of the form `{name}`, the
// overloaded brace convention from §9 ("any entry whose key matches
// ^{.*}$ is a path parameter").
var pathParamRe = regexp.MustCompile(`^\{.*\}$`)

// SplitParams separates resolved, enabled params into path parameters
// (braced keys, substituted into the URL literal) and real query
// parameters (§4.6 step 2).
func SplitParams(params model.KVList) (path, query model.KVList) {
	for _, p := range params {
		if pathParamRe.MatchString(p.Key) {
			path = append(path, p)
		} else {
			query = append(query, p)
		}
	}
	return path, query
}

// SubstitutePathParams replaces every `{name}` occurrence in rawURL with
// its corresponding path-parameter value (keys carry the braces already).
func SubstitutePathParams(rawURL string, path model.KVList) string {
	for _, p := range path {
		rawURL = strings.ReplaceAll(rawURL, p.Key, p.Value)
	}
	return rawURL
}

// BuildURL appends query to rawURL's query string, with keys sorted for
// deterministic output (mirrors the teacher's apibridge/url.go addQuery).
func BuildURL(rawURL string, query model.KVList) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if len(query) == 0 {
		return u, nil
	}
	q := u.Query()
	for _, p := range query {
		q.Add(p.Key, p.Value)
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		for _, v := range q[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	u.RawQuery = b.String()
	return u, nil
}
