package domain

import "strings"

// Identifier derives the stable logical identifier for a document from
// its normalised relative path. It is a pure function of the path: two
// runs over the same tree always agree, and a change to the file's
// bytes never changes its identifier.
//
// The identifier doubles as an artifact filename stem, so every
// character outside [A-Za-z0-9_-] is folded to an underscore. The
// extension is kept (as a suffix segment) so same-stem files of
// different types stay distinct.
func Identifier(relPath string) string {
	var b strings.Builder
	b.Grow(len(relPath))
	for _, r := range relPath {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
