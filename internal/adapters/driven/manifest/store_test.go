package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// TestStore_LoadMissing tests that a missing manifest file yields an
// empty manifest
func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	m := store.Load()

	assert.NotNil(t, m)
	assert.Empty(t, m)
}

// TestStore_RoundTrip tests Save then Load
func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	in := domain.Manifest{
		"doc_a": {
			Signature:         "sig-a",
			ArtifactFilenames: []string{"doc_a.json"},
			LastProcessed:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, store.Save(in))

	out := store.Load()

	assert.Equal(t, in, out)
}

// TestStore_LoadCorrupt tests that an unreadable manifest degrades to an
// empty one instead of failing the run
func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, domain.ManifestFilename), []byte("{not json"), 0o644))

	store := NewStore(dir)
	m := store.Load()

	assert.NotNil(t, m)
	assert.Empty(t, m)
}

// TestStore_SaveCreatesDirectory tests saving into a not-yet-existing
// stage directory
func TestStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "classified")
	store := NewStore(dir)

	require.NoError(t, store.Save(domain.Manifest{}))

	assert.FileExists(t, filepath.Join(dir, domain.ManifestFilename))
}

// TestStore_Filename tests the base-name accessor used by the stages to
// exempt the manifest from artifact listings
func TestStore_Filename(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.Equal(t, domain.ManifestFilename, store.Filename())
}
