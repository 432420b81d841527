package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// TestRegistry_Dispatch tests kind-based dispatch
func TestRegistry_Dispatch(t *testing.T) {
	r := NewRegistry(NewPlainText())
	path := writeTemp(t, "a.txt", "content")

	text, err := r.Extract(context.Background(), path, domain.KindText)

	require.NoError(t, err)
	assert.Equal(t, "content", text)
}

// TestRegistry_Supports tests kind coverage reporting
func TestRegistry_Supports(t *testing.T) {
	r := NewRegistry(NewPlainText(), NewTabular())

	assert.True(t, r.Supports(domain.KindText))
	assert.True(t, r.Supports(domain.KindTable))
	assert.False(t, r.Supports(domain.KindBinaryDocument))
	assert.False(t, r.Supports(domain.KindUnknown))
}

// TestRegistry_Unsupported tests the missing-extractor error
func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry(NewPlainText())

	_, err := r.Extract(context.Background(), "a.pdf", domain.KindBinaryDocument)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

// TestRegistry_LaterRegistrationWins tests adapter overriding
func TestRegistry_LaterRegistrationWins(t *testing.T) {
	r := NewRegistry(NewPlainText())
	r.Register(NewPlainText())

	assert.True(t, r.Supports(domain.KindText))
}

// TestDefaults tests that the standard registry covers every eligible
// kind
func TestDefaults(t *testing.T) {
	r := Defaults()

	assert.True(t, r.Supports(domain.KindText))
	assert.True(t, r.Supports(domain.KindTable))
	assert.True(t, r.Supports(domain.KindBinaryDocument))
	assert.False(t, r.Supports(domain.KindArchive))
}
