// Package gemini provides a classifier adapter using the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/llm"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.Classifier = (*Classifier)(nil)

// Default configuration values.
const (
	DefaultModel             = "gemini-1.5-flash-latest"
	DefaultRequestsPerMinute = 60
)

// Config holds configuration for the Gemini classifier.
type Config struct {
	// APIKey is the Google AI API key (required).
	APIKey string

	// Model is the Gemini model to use (default: gemini-1.5-flash-latest).
	Model string

	// RequestsPerMinute caps the call rate (default: 60).
	RequestsPerMinute int
}

// Classifier labels document text via the Gemini API.
type Classifier struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	limiter *rate.Limiter
}

// New creates a Gemini classifier.
func New(ctx context.Context, cfg Config) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	interval := time.Minute / time.Duration(cfg.RequestsPerMinute)
	return &Classifier{
		client:  client,
		model:   client.GenerativeModel(cfg.Model),
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Name identifies the adapter for logging.
func (c *Classifier) Name() string {
	return "gemini"
}

// Classify sends the text to the model and decodes the JSON reply.
func (c *Classifier) Classify(ctx context.Context, text string) (*domain.Classification, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(llm.ClassificationPrompt(text)))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini: %v", domain.ErrClassificationFailed, err)
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, fmt.Errorf("%w: gemini returned no text", domain.ErrEmptyResponse)
	}
	return llm.ParseClassification(raw)
}

// Close releases the underlying client.
func (c *Classifier) Close() error {
	return c.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}
