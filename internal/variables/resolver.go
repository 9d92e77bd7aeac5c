// Package variables implements VariableResolver (§4.2): {{KEY}} substitution
// against the active environment, then the four built-in dynamic tokens.
package variables

import (
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"atac/internal/model"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

const (
	builtinNow       = "NOW"
	builtinTimestamp = "TIMESTAMP"
	builtinUUIDv4    = "UUIDv4"
	builtinUUIDv7    = "UUIDv7"
)

// Resolver substitutes {{name}} placeholders. It is stateless aside from
// the clock it's given, making it trivially safe for
// concurrent use across the executors.
type Resolver struct {
	// Now, if set, overrides time.Now (used by tests to pin {{NOW}}/{{TIMESTAMP}}).
	Now func() time.Time
}

// New returns a Resolver using the real wall clock.
func New() *Resolver {
	return &Resolver{Now: time.Now}
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Resolve replaces every {{KEY}} substring with env's value for KEY, then
// the four built-in tokens. Undefined keys are left verbatim. Substitution
// is single-pass: env values are not themselves re-resolved (§4.2).
func (r *Resolver) Resolve(s string, env *model.Environment) string {
	var vars map[string]string
	if env != nil {
		vars = env.AsMap()
	}
	out := placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		key := placeholderRe.FindStringSubmatch(match)[1]
		if v, ok := vars[key]; ok {
			return v
		}
		return match
	})
	return r.resolveBuiltins(out)
}

func (r *Resolver) resolveBuiltins(s string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		key := placeholderRe.FindStringSubmatch(match)[1]
		switch key {
		case builtinNow:
			return r.now().UTC().Format(time.RFC3339)
		case builtinTimestamp:
			return strconv.FormatInt(r.now().Unix(), 10)
		case builtinUUIDv4:
			return uuid.New().String()
		case builtinUUIDv7:
			id, err := uuid.NewV7()
			if err != nil {
				return uuid.New().String()
			}
			return id.String()
		default:
			return match
		}
	})
}

// ResolveKV returns a new KVList with every entry's Value resolved, enabled
// or not; Key is left untouched (keys are never templated in this spec).
func (r *Resolver) ResolveKV(list model.KVList, env *model.Environment) model.KVList {
	out := make(model.KVList, len(list))
	for i, e := range list {
		out[i] = e
		out[i].Value = r.Resolve(e.Value, env)
	}
	return out
}
