package logtree

import (
	"strconv"
	"strings"

	"github.com/tidwall/match"
)

// redactor elides matched field paths from structured payloads before they
// reach the encoder. Paths use dot/bracket addressing with wildcards:
//
//	token
//	req.headers.authorization
//	*.password
//	users[*].ssn
//
// Matched fields are removed entirely, never masked. Patterns are applied in
// registration order against a copy of the payload; the caller's map is left
// untouched.
type redactor struct {
	paths [][]string
}

func newRedactor(patterns []string) *redactor {
	r := &redactor{}
	for _, p := range patterns {
		if segs := splitFieldPath(p); len(segs) > 0 {
			r.paths = append(r.paths, segs)
		}
	}
	if len(r.paths) == 0 {
		return nil
	}
	return r
}

// extend returns a redactor covering the receiver's paths plus patterns.
// The receiver may be nil.
func (r *redactor) extend(patterns []string) *redactor {
	if r == nil {
		return newRedactor(patterns)
	}
	next := &redactor{paths: append([][]string(nil), r.paths...)}
	for _, p := range patterns {
		if segs := splitFieldPath(p); len(segs) > 0 {
			next.paths = append(next.paths, segs)
		}
	}
	return next
}

// apply returns payload with all matched paths removed. When the redactor is
// nil or empty the payload is returned as-is, uncopied.
func (r *redactor) apply(payload map[string]any) map[string]any {
	if r == nil || len(r.paths) == 0 || len(payload) == 0 {
		return payload
	}
	out := cloneMap(payload)
	for _, p := range r.paths {
		pruneMap(out, p)
	}
	return out
}

// splitFieldPath breaks "users[*].ssn" into ["users", "[*]", "ssn"].
func splitFieldPath(path string) []string {
	var segs []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				// Unterminated bracket, treat the rest literally.
				cur.WriteString(path[i:])
				i = len(path)
				break
			}
			segs = append(segs, path[i:i+end+1])
			i += end
		default:
			cur.WriteByte(path[i])
		}
	}
	flush()
	return segs
}

func matchKey(seg, key string) bool {
	if strings.HasPrefix(seg, "[") {
		return false
	}
	return match.Match(key, seg)
}

func matchIndex(seg string, i int) bool {
	switch seg {
	case "*", "[*]":
		return true
	}
	if strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") {
		seg = seg[1 : len(seg)-1]
	}
	n, err := strconv.Atoi(seg)
	return err == nil && n == i
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func pruneMap(m map[string]any, segs []string) {
	seg, rest := segs[0], segs[1:]
	for k, v := range m {
		if !matchKey(seg, k) {
			continue
		}
		if len(rest) == 0 {
			delete(m, k)
			continue
		}
		switch t := v.(type) {
		case map[string]any:
			pruneMap(t, rest)
		case []any:
			m[k] = pruneSlice(t, rest)
		}
	}
}

func pruneSlice(s []any, segs []string) []any {
	seg, rest := segs[0], segs[1:]
	if len(rest) == 0 {
		out := s[:0]
		for i, v := range s {
			if !matchIndex(seg, i) {
				out = append(out, v)
			}
		}
		return out
	}
	for i, v := range s {
		if !matchIndex(seg, i) {
			continue
		}
		switch t := v.(type) {
		case map[string]any:
			pruneMap(t, rest)
		case []any:
			s[i] = pruneSlice(t, rest)
		}
	}
	return s
}
