package driven

import (
	"context"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// ChunkCatalog mirrors processed documents and chunks into a queryable
// store. The catalog is a convenience index for status and lookup
// commands; the artifact folders remain the durable output.
type ChunkCatalog interface {
	// UpsertDocument stores or updates a document row.
	UpsertDocument(ctx context.Context, doc *domain.DocumentRecord, chunkCount int) error

	// ReplaceChunks atomically swaps the chunk rows for a parent.
	ReplaceChunks(ctx context.Context, parentID string, chunks []domain.ChunkRecord) error

	// DeleteDocument removes a document row and its chunks.
	DeleteDocument(ctx context.Context, parentID string) error

	// GetChunk retrieves one chunk by its chunk ID.
	GetChunk(ctx context.Context, chunkID string) (*domain.ChunkRecord, error)

	// Counts returns the stored document and chunk totals.
	Counts(ctx context.Context) (documents, chunks int, err error)

	// Close releases the underlying database handle.
	Close() error
}
