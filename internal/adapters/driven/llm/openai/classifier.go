// Package openai provides a classifier adapter using the OpenAI API.
package openai

import (
	"context"
	"fmt"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/llm"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.Classifier = (*Classifier)(nil)

// Default configuration values.
const (
	DefaultModel             = "gpt-4o-mini"
	DefaultRequestsPerMinute = 60
)

// Config holds configuration for the OpenAI classifier.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL, for Azure OpenAI or
	// compatible APIs. Empty uses the public endpoint.
	BaseURL string

	// Model is the model to use (default: gpt-4o-mini).
	Model string

	// RequestsPerMinute caps the call rate (default: 60).
	RequestsPerMinute int
}

// Classifier labels document text via the OpenAI chat completions API.
type Classifier struct {
	client  *goopenai.Client
	model   string
	limiter *rate.Limiter
}

// New creates an OpenAI classifier.
func New(cfg Config) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	interval := time.Minute / time.Duration(cfg.RequestsPerMinute)
	return &Classifier{
		client:  goopenai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Name identifies the adapter for logging.
func (c *Classifier) Name() string {
	return "openai"
}

// Classify sends the text to the model and decodes the JSON reply.
func (c *Classifier) Classify(ctx context.Context, text string) (*domain.Classification, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: llm.ClassificationPrompt(text)},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %v", domain.ErrClassificationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: openai returned no choices", domain.ErrEmptyResponse)
	}
	return llm.ParseClassification(resp.Choices[0].Message.Content)
}

// Close releases resources. The HTTP client needs no explicit cleanup.
func (c *Classifier) Close() error {
	return nil
}
