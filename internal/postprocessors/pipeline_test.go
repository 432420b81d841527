package postprocessors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	settings := domain.DefaultSettings(t.TempDir())
	settings.TextChunkSize = 10
	settings.TextChunkOverlap = 0
	return FromSettings(settings)
}

// TestChunksFor_TextStrategy tests that prose file types take the
// recursive text splitter
func TestChunksFor_TextStrategy(t *testing.T) {
	p := newTestPipeline(t)
	doc := &domain.DocumentRecord{
		Identifier: "doc",
		FileType:   "txt",
		Text:       "xxxxxxxxxxxxxxxxxxxxxxxxx", // 25 runes, size 10
	}

	chunks, strategy, err := p.ChunksFor(doc)

	require.NoError(t, err)
	assert.Equal(t, domain.StrategyTextRecursive, strategy)
	require.Len(t, chunks, 3)
	assert.Equal(t, "xxxxxxxxxx", chunks[0].Text)
	assert.Equal(t, "xxxxx", chunks[2].Text)
}

// TestChunksFor_TableStrategy tests that tabular file types take the
// row splitter
func TestChunksFor_TableStrategy(t *testing.T) {
	p := newTestPipeline(t)
	doc := &domain.DocumentRecord{
		Identifier: "sheet",
		FileType:   "csv",
		Text:       "h1, h2\nr1a, r1b\nr2a, r2b",
	}

	chunks, strategy, err := p.ChunksFor(doc)

	require.NoError(t, err)
	assert.Equal(t, domain.StrategyTableRows, strategy)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.Equal(t, domain.StrategyTableRows, c.Metadata.Strategy)
	}
}

// TestChunksFor_UnknownKeptWhole tests that unrecognised file types are
// emitted as one chunk regardless of length
func TestChunksFor_UnknownKeptWhole(t *testing.T) {
	p := newTestPipeline(t)
	doc := &domain.DocumentRecord{
		Identifier: "blob",
		FileType:   "dat",
		Text:       "a body much longer than the configured chunk size",
	}

	chunks, strategy, err := p.ChunksFor(doc)

	require.NoError(t, err)
	assert.Equal(t, domain.StrategyUnknownSingle, strategy)
	require.Len(t, chunks, 1)
	assert.Equal(t, doc.Text, chunks[0].Text)
}

// TestChunksFor_EmptyText tests that empty documents yield no chunks
func TestChunksFor_EmptyText(t *testing.T) {
	p := newTestPipeline(t)

	for _, fileType := range []string{"txt", "csv", "dat"} {
		t.Run(fileType, func(t *testing.T) {
			chunks, _, err := p.ChunksFor(&domain.DocumentRecord{
				Identifier: "empty",
				FileType:   fileType,
			})
			require.NoError(t, err)
			assert.Empty(t, chunks)
		})
	}
}

// TestChunksFor_NilDocument tests the nil guard
func TestChunksFor_NilDocument(t *testing.T) {
	p := newTestPipeline(t)

	_, _, err := p.ChunksFor(nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestChunksFor_MetadataInheritance tests that chunks carry the parent's
// provenance and classifications unmodified
func TestChunksFor_MetadataInheritance(t *testing.T) {
	p := newTestPipeline(t)
	labels := &domain.Classification{PrimaryCategory: "Safety", SafetyCritical: true}
	doc := &domain.DocumentRecord{
		Identifier:      "docs_Manual_pdf",
		FileName:        "Manual.pdf",
		FileType:        "pdf",
		SourcePathInRaw: "docs/Manual.pdf",
		Text:            "alpha beta gamma delta epsilon",
		Classifications: labels,
	}

	chunks, _, err := p.ChunksFor(doc)

	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		assert.Equal(t, "docs_Manual_pdf", c.ParentIdentifier)
		assert.Equal(t, "Manual.pdf", c.OriginalFilename)
		assert.Equal(t, "docs/Manual.pdf", c.SourcePathInRaw)
		assert.Equal(t, "pdf", c.Metadata.ParentFileType)
		assert.Equal(t, Producer, c.Metadata.Producer)
		assert.Equal(t, i+1, c.Metadata.Sequence)
		assert.Same(t, labels, c.Classifications)
	}
}

// TestChunkID tests the zero-padded naming scheme
func TestChunkID(t *testing.T) {
	assert.Equal(t, "doc_chunk_001", ChunkID("doc", 1))
	assert.Equal(t, "doc_chunk_042", ChunkID("doc", 42))
	assert.Equal(t, "doc_chunk_1000", ChunkID("doc", 1000))
	assert.Equal(t, "doc_chunk_001.json", ChunkFilename(ChunkID("doc", 1)))
}
