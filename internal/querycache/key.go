// Package querycache is the single point of truth for backend reads.
// It memoizes results per normalized operation key, collapses
// concurrent identical requests into one in-flight call, caches
// failures until explicitly invalidated, and lets observers react to
// state transitions.
package querycache

import (
	"encoding/json"
	"fmt"
)

// Key identifies one cached backend read: the operation name plus a
// canonical encoding of its parameters.
type Key struct {
	Op     string
	Params string
}

// NewKey builds a cache key from an operation name and its parameters.
// Parameter encodings that mean the same request produce the same key:
// nil maps, empty slices, and omitted fields all normalize away, so an
// absent tag list and an empty tag list share one cache entry.
//
// Explicit empty strings survive normalization; request structs use
// omitempty (or pointer fields) to distinguish "absent" from "empty",
// which is how the root-namespace filter keeps its own key.
func NewKey(op string, params any) Key {
	return Key{Op: op, Params: NormalizeParams(params)}
}

// String renders the key for logs and debugging.
func (k Key) String() string {
	if k.Params == "" {
		return k.Op
	}
	return k.Op + "?" + k.Params
}

// NormalizeParams produces the canonical parameter encoding used in
// keys: JSON with empty containers pruned and object keys sorted.
func NormalizeParams(params any) string {
	if params == nil {
		return ""
	}

	data, err := json.Marshal(params)
	if err != nil {
		// Unmarshalable params never reach the backend either; keep a
		// distinct key so the failure is observable.
		return fmt.Sprintf("!unencodable:%T", params)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return string(data)
	}

	pruned := prune(decoded)
	if pruned == nil {
		return ""
	}

	canonical, err := json.Marshal(pruned)
	if err != nil {
		return string(data)
	}
	return string(canonical)
}

// prune removes nil values and empty containers, recursively. Scalars
// (including empty strings) pass through untouched.
func prune(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if p := prune(val); p != nil {
				out[k] = p
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		if len(t) == 0 {
			return nil
		}
		out := make([]any, 0, len(t))
		for _, val := range t {
			out = append(out, prune(val))
		}
		return out
	default:
		return v
	}
}
