package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestManifest_ArtifactNames tests the keep-set union across entries
func TestManifest_ArtifactNames(t *testing.T) {
	m := Manifest{
		"a": {ArtifactFilenames: []string{"a.json"}},
		"b": {ArtifactFilenames: []string{"b_chunk_001.json", "b_chunk_002.json"}},
		"c": {},
	}

	keep := m.ArtifactNames()

	assert.Len(t, keep, 3)
	assert.True(t, keep["a.json"])
	assert.True(t, keep["b_chunk_001.json"])
	assert.True(t, keep["b_chunk_002.json"])
	assert.False(t, keep["unrelated.json"])
}

// TestManifest_Clone tests that mutations of the copy never reach the
// original
func TestManifest_Clone(t *testing.T) {
	original := Manifest{
		"a": {Signature: "sig-a"},
	}

	clone := original.Clone()
	clone["b"] = ManifestEntry{Signature: "sig-b"}
	delete(clone, "a")

	assert.Len(t, original, 1)
	assert.Equal(t, "sig-a", original["a"].Signature)
}
