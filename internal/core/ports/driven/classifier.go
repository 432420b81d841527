package driven

import (
	"context"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// Classifier attaches structured labels to document text. The core
// propagates the returned labels into chunk records unmodified.
type Classifier interface {
	// Name identifies the adapter for logging ("gemini", "openai").
	Name() string

	// Classify labels the given text. A nil Classification with a nil
	// error never occurs; failures wrap domain.ErrClassificationFailed
	// (call failure) or report a parse failure via ParseError.
	Classify(ctx context.Context, text string) (*domain.Classification, error)

	// Close releases any underlying client resources.
	Close() error
}

// ParseError reports a classifier response that arrived but could not
// be decoded as the expected JSON structure. The raw response is kept
// for the llm_processing_error record.
type ParseError struct {
	// Raw is the undecodable model response.
	Raw string

	// Err is the underlying decode error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "classification response is not valid JSON: " + e.Err.Error()
}

// Unwrap returns the decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
