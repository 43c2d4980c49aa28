package tools

import "strings"

// Params is the loosely-typed argument bag supplied by the planner.
// Every accessor tolerates absence and wrong types; tools must never
// crash on model-authored input.
type Params map[string]interface{}

// String returns the trimmed string value for key, or "" when absent or
// not a string.
func (p Params) String(key string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// StringOr returns the string value for key or def when empty.
func (p Params) StringOr(key, def string) string {
	if s := p.String(key); s != "" {
		return s
	}
	return def
}
