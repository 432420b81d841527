package preparers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConverter converts .doc to .docx by writing a sibling file. It can
// be told to fail, or to claim success without producing output.
type stubConverter struct {
	fail       bool
	skipOutput bool
	calls      int
}

func (s *stubConverter) CanConvert(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".doc")
}

func (s *stubConverter) Convert(_ context.Context, src string) (string, error) {
	s.calls++
	if s.fail {
		return "", errors.New("conversion failed")
	}
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".docx"
	if !s.skipOutput {
		if err := os.WriteFile(dst, []byte("converted"), 0o644); err != nil {
			return "", err
		}
	}
	return dst, nil
}

// TestPrepare_ConvertsLegacy tests conversion plus deletion of the
// confirmed original
func TestPrepare_ConvertsLegacy(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "manual.doc"), []byte("old"), 0o644))

	conv := &stubConverter{}
	report, err := New(root, conv).Prepare(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesConverted)
	assert.Equal(t, 1, conv.calls)
	assert.FileExists(t, filepath.Join(root, "manual.docx"))
	assert.NoFileExists(t, filepath.Join(root, "manual.doc"))
}

// TestPrepare_ModernSiblingSkipsConversion tests that an existing modern
// counterpart suppresses the converter call
func TestPrepare_ModernSiblingSkipsConversion(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "manual.doc"), []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "manual.docx"), []byte("new"), 0o644))

	conv := &stubConverter{}
	report, err := New(root, conv).Prepare(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesConverted)
	assert.Equal(t, 0, conv.calls)
	assert.FileExists(t, filepath.Join(root, "manual.doc"), "unconverted original must survive")
}

// TestPrepare_ConversionFailureKeepsOriginal tests that a failed
// conversion is counted and the original kept for the next run
func TestPrepare_ConversionFailureKeepsOriginal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "manual.doc"), []byte("old"), 0o644))

	conv := &stubConverter{fail: true}
	report, err := New(root, conv).Prepare(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesConverted)
	assert.Equal(t, 1, report.Errors)
	assert.FileExists(t, filepath.Join(root, "manual.doc"))
}

// TestPrepare_MissingOutputKeepsOriginal tests that a converter claiming
// success without producing the file never costs the original
func TestPrepare_MissingOutputKeepsOriginal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "manual.doc"), []byte("old"), 0o644))

	conv := &stubConverter{skipOutput: true}
	report, err := New(root, conv).Prepare(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesConverted)
	assert.Equal(t, 1, report.Errors)
	assert.FileExists(t, filepath.Join(root, "manual.doc"))
}

// TestPrepare_NilConverter tests that preparation works with conversion
// disabled
func TestPrepare_NilConverter(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "manual.doc"), []byte("old"), 0o644))

	report, err := New(root, nil).Prepare(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesConverted)
	assert.FileExists(t, filepath.Join(root, "manual.doc"))
}
