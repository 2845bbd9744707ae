package kebab

import "strings"

// Normalize maps a single path component to its canonical form: every space
// and underscore becomes a hyphen, and all letters are lowercased.
//
// Separators map one-to-one, so consecutive spaces become consecutive
// hyphens. Lowercasing uses Unicode simple case mapping and is
// locale-independent. Normalize is pure and idempotent.
func Normalize(name string) string {
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")
	return strings.ToLower(name)
}

// NeedsRename reports whether name differs from its normalized form.
func NeedsRename(name string) bool {
	return Normalize(name) != name
}
