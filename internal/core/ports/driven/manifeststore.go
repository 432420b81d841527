package driven

import "github.com/arkival-labs/arkival-cli/internal/core/domain"

// ManifestStore persists one stage's manifest as a single JSON file
// inside that stage's artifact directory.
type ManifestStore interface {
	// Load reads the manifest. It is tolerant: a missing or corrupt
	// file yields an empty manifest and a warning log, never an error.
	Load() domain.Manifest

	// Save writes the full manifest, overwriting the previous file.
	// A save failure is returned for logging but is non-fatal to the
	// run: the artifacts already written remain valid, at the cost of
	// redoing work next run.
	Save(m domain.Manifest) error

	// Filename returns the manifest's base filename, so the
	// reconciler can exempt it from orphan deletion.
	Filename() string
}
