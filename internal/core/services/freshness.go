package services

import "github.com/arkival-labs/arkival-cli/internal/core/domain"

// Fresh is the single skip/reprocess gate used by every stage. An entry
// is fresh - and its document skippable - only when all three hold:
//
//  1. the manifest has an entry for id,
//  2. the stored signature equals the freshly computed one, and
//  3. every recorded artifact filename still exists.
//
// Any single missing artifact or parameter change invalidates the whole
// entry, forcing full reprocessing of the document.
func Fresh(m domain.Manifest, id, signature string, exists func(name string) bool) bool {
	entry, ok := m[id]
	if !ok {
		return false
	}
	if entry.Signature != signature {
		return false
	}
	for _, name := range entry.ArtifactFilenames {
		if !exists(name) {
			return false
		}
	}
	return true
}
