package domain

import "time"

// ManifestEntry records the last successful processing of one document.
// An entry is only trustworthy while its signature matches the current
// input and every listed artifact still exists; any mismatch forces full
// reprocessing of the document.
type ManifestEntry struct {
	// Signature is the content signature at the time of processing.
	Signature string `json:"signature"`

	// ArtifactFilenames lists every artifact file the processing
	// produced, relative to the artifact directory.
	ArtifactFilenames []string `json:"artifact_filenames"`

	// LastProcessed is when the entry was recorded.
	LastProcessed time.Time `json:"last_processed"`
}

// Manifest maps document identifiers to their processing state. It is
// the single source of truth for what has been produced; artifact files
// on disk are derived state reconciled against it.
type Manifest map[string]ManifestEntry

// ArtifactNames returns the set of artifact filenames referenced by any
// entry - the reconciler's keep set.
func (m Manifest) ArtifactNames() map[string]bool {
	keep := make(map[string]bool)
	for _, entry := range m {
		for _, name := range entry.ArtifactFilenames {
			keep[name] = true
		}
	}
	return keep
}

// Clone returns a shallow copy of the manifest. Entries are value types,
// so mutating the copy never touches the original map.
func (m Manifest) Clone() Manifest {
	out := make(Manifest, len(m))
	for id, entry := range m {
		out[id] = entry
	}
	return out
}
