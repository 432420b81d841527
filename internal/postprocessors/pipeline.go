// Package postprocessors turns extracted documents into chunk records.
package postprocessors

import (
	"fmt"

	"github.com/arkival-labs/arkival-cli/internal/chunkers/table"
	"github.com/arkival-labs/arkival-cli/internal/chunkers/text"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// Producer is recorded in every chunk's metadata.
const Producer = "arkival"

// Pipeline selects a chunking strategy per document and builds the
// resulting chunk records. Strategy selection is by file type: prose
// and parsed binary documents take the recursive text splitter, tabular
// renderings take the row splitter, anything else is kept whole.
type Pipeline struct {
	textSplitter  *text.Splitter
	tableSplitter *table.Splitter
}

// NewPipeline creates a pipeline with explicit splitters.
func NewPipeline(textSplitter *text.Splitter, tableSplitter *table.Splitter) *Pipeline {
	return &Pipeline{
		textSplitter:  textSplitter,
		tableSplitter: tableSplitter,
	}
}

// FromSettings builds the pipeline configured by the settings value.
func FromSettings(s domain.Settings) *Pipeline {
	return NewPipeline(
		text.New(
			text.WithChunkSize(s.TextChunkSize),
			text.WithOverlap(s.TextChunkOverlap),
		),
		table.New(
			table.WithSingleChunkThreshold(s.TableSingleChunkThreshold),
			table.WithRowsPerChunk(s.TableRowsPerChunk),
		),
	)
}

// ChunksFor splits doc's text by its strategy and returns the chunk
// records plus the strategy tag applied. Sequence numbers are 1-based
// and gapless; the records inherit the parent's filename, source path
// and classifications unmodified.
//
// A document with no text yields no chunks and the strategy tag only.
func (p *Pipeline) ChunksFor(doc *domain.DocumentRecord) ([]domain.ChunkRecord, string, error) {
	if doc == nil {
		return nil, "", domain.ErrInvalidInput
	}

	strategy := domain.ChunkStrategyFor(doc.FileType)

	var pieces []string
	switch strategy {
	case domain.StrategyTextRecursive:
		pieces = p.textSplitter.Split(doc.Text)
	case domain.StrategyTableRows:
		pieces = p.tableSplitter.Split(doc.Text)
	default:
		if doc.Text != "" {
			pieces = []string{doc.Text}
		}
	}

	chunks := make([]domain.ChunkRecord, 0, len(pieces))
	for i, piece := range pieces {
		seq := i + 1
		chunks = append(chunks, domain.ChunkRecord{
			ChunkID:          ChunkID(doc.Identifier, seq),
			ParentIdentifier: doc.Identifier,
			OriginalFilename: doc.FileName,
			SourcePathInRaw:  doc.SourcePathInRaw,
			Text:             piece,
			Classifications:  doc.Classifications,
			Metadata: domain.ChunkMetadata{
				Sequence:       seq,
				ParentFileType: doc.FileType,
				Strategy:       strategy,
				Producer:       Producer,
			},
		})
	}
	return chunks, strategy, nil
}

// ChunkID formats the chunk identifier for a parent and 1-based
// sequence number.
func ChunkID(parentID string, seq int) string {
	return fmt.Sprintf("%s_chunk_%03d", parentID, seq)
}

// ChunkFilename is the artifact filename for a chunk ID.
func ChunkFilename(chunkID string) string {
	return chunkID + ".json"
}
