package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// TestCreateClassifier_None tests that an empty provider disables
// classification without error
func TestCreateClassifier_None(t *testing.T) {
	settings := domain.DefaultSettings(t.TempDir())
	settings.Classifier = ""

	classifier, err := CreateClassifier(context.Background(), settings)

	require.NoError(t, err)
	assert.Nil(t, classifier)
}

// TestCreateClassifier_Unknown tests the unsupported-provider error
func TestCreateClassifier_Unknown(t *testing.T) {
	settings := domain.DefaultSettings(t.TempDir())
	settings.Classifier = "llama-at-home"

	_, err := CreateClassifier(context.Background(), settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestCreateClassifier_MissingKey tests that a configured provider with
// no credential in the environment fails up front
func TestCreateClassifier_MissingKey(t *testing.T) {
	t.Setenv(EnvOpenAIAPIKey, "")
	settings := domain.DefaultSettings(t.TempDir())
	settings.Classifier = "openai"

	_, err := CreateClassifier(context.Background(), settings)

	assert.Error(t, err)
}
