package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file kind no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExtractionFailed indicates text extraction failed for a file.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrClassificationFailed indicates the classification call failed.
	ErrClassificationFailed = errors.New("classification failed")

	// ErrClassifierUnavailable indicates no classifier is configured.
	// The classify stage is skipped without one.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrEmptyResponse indicates the classifier returned no text.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrRunInProgress indicates a pipeline run is already executing.
	ErrRunInProgress = errors.New("run in progress")
)

// ErrorKind buckets per-file failures for the run summary.
type ErrorKind int

const (
	// KindNone means the outcome carries no error.
	KindNone ErrorKind = iota

	// KindDecode means a persisted record could not be decoded.
	KindDecode

	// KindExtraction means the text extractor failed.
	KindExtraction

	// KindClassification means the classifier failed.
	KindClassification

	// KindIO means an artifact or manifest write failed.
	KindIO
)

// String returns the kind name for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindExtraction:
		return "extraction"
	case KindClassification:
		return "classification"
	case KindIO:
		return "io"
	default:
		return "none"
	}
}
