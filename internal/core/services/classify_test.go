package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/artifacts"
	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/manifest"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// stubClassifier returns a fixed result (or error) and counts calls.
type stubClassifier struct {
	labels *domain.Classification
	err    error
	calls  int
	lastIn string
}

func (s *stubClassifier) Name() string { return "stub" }

func (s *stubClassifier) Classify(_ context.Context, text string) (*domain.Classification, error) {
	s.calls++
	s.lastIn = text
	if s.err != nil {
		return nil, s.err
	}
	return s.labels, nil
}

func (s *stubClassifier) Close() error { return nil }

// newClassifyFixture builds a classify stage over temp processed and
// classified stores.
func newClassifyFixture(t *testing.T, c *stubClassifier, maxChars int) (source, store *artifacts.Store, stage *ClassifyStage) {
	t.Helper()

	source, err := artifacts.NewStore(t.TempDir())
	require.NoError(t, err)
	outDir := t.TempDir()
	store, err = artifacts.NewStore(outDir)
	require.NoError(t, err)

	stage = NewClassifyStage(c, source, store, manifest.NewStore(outDir), maxChars)
	return source, store, stage
}

func writeProcessed(t *testing.T, source *artifacts.Store, id, text string) {
	t.Helper()
	record := domain.DocumentRecord{
		Identifier:  id,
		FileName:    id + ".txt",
		FileType:    "txt",
		Text:        text,
		ContentHash: TextHash(text),
	}
	require.NoError(t, source.WriteJSON(id+".json", &record))
}

// TestClassifyStage_NoClassifier tests the stage declines without an
// adapter
func TestClassifyStage_NoClassifier(t *testing.T) {
	_, _, stage := newClassifyFixture(t, nil, 0)
	stage.classifier = nil

	_, err := stage.Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrClassifierUnavailable)
}

// TestClassifyStage_LabelsRecords tests the success path
func TestClassifyStage_LabelsRecords(t *testing.T) {
	labels := &domain.Classification{
		PrimaryCategory:  "Maintenance",
		DocumentTypeTags: []string{"SOP"},
		DetectedLanguage: "en",
		BriefSummary:     "A procedure.",
	}
	c := &stubClassifier{labels: labels}
	source, store, stage := newClassifyFixture(t, c, 0)
	writeProcessed(t, source, "doc_a", "procedure text")

	summary, err := stage.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, c.calls)

	var record domain.DocumentRecord
	require.NoError(t, store.ReadJSON("doc_a.json", &record))
	assert.Equal(t, domain.ClassificationSuccess, record.ClassificationStatus)
	require.NotNil(t, record.Classifications)
	assert.Equal(t, "Maintenance", record.Classifications.PrimaryCategory)
}

// TestClassifyStage_SecondRunSkips tests that unchanged text never
// re-calls the model
func TestClassifyStage_SecondRunSkips(t *testing.T) {
	c := &stubClassifier{labels: &domain.Classification{PrimaryCategory: "Ops"}}
	source, _, stage := newClassifyFixture(t, c, 0)
	writeProcessed(t, source, "doc_a", "stable text")

	_, err := stage.Run(context.Background())
	require.NoError(t, err)

	summary, err := stage.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, c.calls, "unchanged text must not be re-sent")
}

// TestClassifyStage_EmptyTextSkipsModel tests that empty documents are
// committed with a skip status and no model call
func TestClassifyStage_EmptyTextSkipsModel(t *testing.T) {
	c := &stubClassifier{labels: &domain.Classification{}}
	source, store, stage := newClassifyFixture(t, c, 0)
	writeProcessed(t, source, "empty_doc", "   \n ")

	summary, err := stage.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 0, c.calls)

	var record domain.DocumentRecord
	require.NoError(t, store.ReadJSON("empty_doc.json", &record))
	assert.Equal(t, domain.ClassificationSkippedEmpty, record.ClassificationStatus)
	assert.Nil(t, record.Classifications)
}

// TestClassifyStage_EmptyRecordSurvivesRerun tests that the skip-status
// record is manifested and not swept as an orphan
func TestClassifyStage_EmptyRecordSurvivesRerun(t *testing.T) {
	c := &stubClassifier{labels: &domain.Classification{}}
	source, store, stage := newClassifyFixture(t, c, 0)
	writeProcessed(t, source, "empty_doc", "")

	_, err := stage.Run(context.Background())
	require.NoError(t, err)

	summary, err := stage.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.OrphansDeleted)
	assert.True(t, store.Exists("empty_doc.json"))
}

// TestClassifyStage_FailureRecordedAndRetried tests that a failed
// document keeps an error-status record and is retried next run
func TestClassifyStage_FailureRecordedAndRetried(t *testing.T) {
	c := &stubClassifier{err: errors.New("rate limited")}
	source, store, stage := newClassifyFixture(t, c, 0)
	writeProcessed(t, source, "doc_a", "some text")

	summary, err := stage.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)

	var record domain.DocumentRecord
	require.NoError(t, store.ReadJSON("doc_a.json", &record))
	assert.Equal(t, domain.ClassificationCallFailed, record.ClassificationStatus)

	// The model recovers; the next run retries the document.
	c.err = nil
	c.labels = &domain.Classification{PrimaryCategory: "Safety"}

	summary, err = stage.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 2, c.calls)

	require.NoError(t, store.ReadJSON("doc_a.json", &record))
	assert.Equal(t, domain.ClassificationSuccess, record.ClassificationStatus)
}

// TestClassifyStage_ParseErrorStatus tests that an undecodable model
// response is bucketed separately from a call failure
func TestClassifyStage_ParseErrorStatus(t *testing.T) {
	c := &stubClassifier{err: &driven.ParseError{Raw: "not json", Err: errors.New("bad json")}}
	source, store, stage := newClassifyFixture(t, c, 0)
	writeProcessed(t, source, "doc_a", "some text")

	summary, err := stage.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)

	var record domain.DocumentRecord
	require.NoError(t, store.ReadJSON("doc_a.json", &record))
	assert.Equal(t, domain.ClassificationParseError, record.ClassificationStatus)
	assert.Nil(t, record.Classifications)
}

// TestClassifyStage_Truncation tests the classification text budget
func TestClassifyStage_Truncation(t *testing.T) {
	c := &stubClassifier{labels: &domain.Classification{}}
	source, _, stage := newClassifyFixture(t, c, 10)
	writeProcessed(t, source, "long_doc", "0123456789ABCDEF")

	_, err := stage.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0123456789", c.lastIn)
}
