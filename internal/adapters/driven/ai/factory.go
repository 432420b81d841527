// Package ai provides factory functions for creating classifier adapters.
package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/llm/gemini"
	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/llm/openai"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// Environment variables holding provider credentials. Keys never live
// in the config file.
const (
	EnvGoogleAPIKey  = "GOOGLE_API_KEY"
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
)

// CreateClassifier creates the classifier adapter selected by settings.
// Returns (nil, nil) when no classifier is configured; the classify
// stage is then skipped.
func CreateClassifier(ctx context.Context, settings domain.Settings) (driven.Classifier, error) {
	switch settings.Classifier {
	case "":
		return nil, nil

	case "gemini":
		return gemini.New(ctx, gemini.Config{
			APIKey: os.Getenv(EnvGoogleAPIKey),
			Model:  settings.ClassifierModel,
		})

	case "openai":
		return openai.New(openai.Config{
			APIKey:  os.Getenv(EnvOpenAIAPIKey),
			BaseURL: os.Getenv(EnvOpenAIBaseURL),
			Model:   settings.ClassifierModel,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported classifier %q", domain.ErrInvalidInput, settings.Classifier)
	}
}
