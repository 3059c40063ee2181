package ingest

import "strings"

// Constraint is the per-invocation upload configuration. An empty extension
// list means no type restriction.
type Constraint struct {
	AllowedExtensions []string
	AllowMultiple     bool
}

// AcceptFilter builds the picker accept filter by dot-prefixing each allowed
// extension, e.g. {"png", "jpg"} becomes ".png,.jpg".
func (c Constraint) AcceptFilter() string {
	if len(c.AllowedExtensions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(c.AllowedExtensions))
	for _, ext := range c.AllowedExtensions {
		parts = append(parts, "."+ext)
	}
	return strings.Join(parts, ",")
}

// Allows reports whether a file with the given extension passes the type
// restriction. The empty extension is rejected whenever a restriction is set.
func (c Constraint) Allows(ext string) bool {
	if len(c.AllowedExtensions) == 0 {
		return true
	}
	if ext == "" {
		return false
	}
	for _, allowed := range c.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}
