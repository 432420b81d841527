package extract

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// TestPlainText tests verbatim reading
func TestPlainText(t *testing.T) {
	path := writeTemp(t, "note.txt", "hello\nworld")

	text, err := NewPlainText().Extract(context.Background(), path, domain.KindText)

	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", text)
}

// TestPlainText_StripsBOM tests that a UTF-8 byte order mark never
// reaches the pipeline
func TestPlainText_StripsBOM(t *testing.T) {
	path := writeTemp(t, "bom.txt", "\xEF\xBB\xBFcontent")

	text, err := NewPlainText().Extract(context.Background(), path, domain.KindText)

	require.NoError(t, err)
	assert.Equal(t, "content", text)
}

// TestPlainText_MissingFile tests the error wrapping
func TestPlainText_MissingFile(t *testing.T) {
	_, err := NewPlainText().Extract(context.Background(),
		filepath.Join(t.TempDir(), "nope.txt"), domain.KindText)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
