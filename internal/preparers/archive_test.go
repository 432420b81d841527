package preparers

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip creates a zip archive at path with the given entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// TestPrepare_ExpandsArchive tests zip expansion into a sibling folder
// and deletion of the consumed archive
func TestPrepare_ExpandsArchive(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "bundle.zip"), map[string]string{
		"a.txt":        "alpha",
		"nested/b.txt": "beta",
	})

	report, err := New(root, nil).Prepare(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.ArchivesExpanded)
	assert.Equal(t, 0, report.Errors)
	assert.NoFileExists(t, filepath.Join(root, "bundle.zip"))
	assert.FileExists(t, filepath.Join(root, "bundle", "a.txt"))
	assert.FileExists(t, filepath.Join(root, "bundle", "nested", "b.txt"))

	data, err := os.ReadFile(filepath.Join(root, "bundle", "nested", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "beta", string(data))
}

// TestPrepare_ExistingSiblingSkipsExtraction tests that an archive whose
// target folder already exists is treated as expanded
func TestPrepare_ExistingSiblingSkipsExtraction(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bundle"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "bundle", "old.txt"), []byte("previous run"), 0o644))
	writeZip(t, filepath.Join(root, "bundle.zip"), map[string]string{"new.txt": "x"})

	report, err := New(root, nil).Prepare(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.ArchivesExpanded)
	assert.NoFileExists(t, filepath.Join(root, "bundle.zip"))
	assert.FileExists(t, filepath.Join(root, "bundle", "old.txt"))
	assert.NoFileExists(t, filepath.Join(root, "bundle", "new.txt"))
}

// TestPrepare_CorruptArchiveKept tests that an unreadable archive is
// counted as an error and left in place for the next run
func TestPrepare_CorruptArchiveKept(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "broken.zip"), []byte("not a zip"), 0o644))

	report, err := New(root, nil).Prepare(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.ArchivesExpanded)
	assert.Equal(t, 1, report.Errors)
	assert.FileExists(t, filepath.Join(root, "broken.zip"))
}

// TestExtractEntry_RejectsEscapingPath tests the traversal guard
func TestExtractEntry_RejectsEscapingPath(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("../escape.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, reader.File, 1)

	parent := t.TempDir()
	targetDir := filepath.Join(parent, "bundle")
	err = extractEntry(reader.File[0], targetDir)

	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(parent, "escape.txt"))
}
