// Package sqlite provides a SQLite-backed chunk catalog.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/catalog/sqlite/migrations"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkCatalog = (*Store)(nil)

// Store mirrors processed documents and chunks into SQLite so status
// and lookup queries need not scan the artifact folders.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the catalog database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite: catalog path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	// WAL mode for better concurrency.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

// UpsertDocument stores or updates a document row. The document text is
// not stored; the artifact folders remain the durable copy.
func (s *Store) UpsertDocument(ctx context.Context, doc *domain.DocumentRecord, chunkCount int) error {
	classJSON, err := marshalClassification(doc.Classifications)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (identifier, file_name, file_type, source_path_in_raw,
			content_hash, classification_status, classifications, chunk_count, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(identifier) DO UPDATE SET
			file_name = excluded.file_name,
			file_type = excluded.file_type,
			source_path_in_raw = excluded.source_path_in_raw,
			content_hash = excluded.content_hash,
			classification_status = excluded.classification_status,
			classifications = excluded.classifications,
			chunk_count = excluded.chunk_count,
			extracted_at = excluded.extracted_at,
			updated_at = CURRENT_TIMESTAMP
	`, doc.Identifier, doc.FileName, doc.FileType, doc.SourcePathInRaw,
		doc.ContentHash, doc.ClassificationStatus, classJSON, chunkCount, doc.ExtractedAt)
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.Identifier, err)
	}
	return nil
}

// ReplaceChunks atomically swaps the chunk rows for a parent.
func (s *Store) ReplaceChunks(ctx context.Context, parentID string, chunks []domain.ChunkRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE parent_identifier = ?", parentID); err != nil {
		return fmt.Errorf("deleting chunks for %s: %w", parentID, err)
	}

	for _, chunk := range chunks {
		classJSON, err := marshalClassification(chunk.Classifications)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO chunks (chunk_id, parent_identifier, sequence, chunk_text,
				original_filename, source_path_in_raw, parent_file_type,
				chunking_strategy, producer, classifications)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, chunk.ChunkID, chunk.ParentIdentifier, chunk.Metadata.Sequence, chunk.Text,
			chunk.OriginalFilename, chunk.SourcePathInRaw, chunk.Metadata.ParentFileType,
			chunk.Metadata.Strategy, chunk.Metadata.Producer, classJSON)
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ChunkID, err)
		}
	}
	return tx.Commit()
}

// DeleteDocument removes a document row; its chunks cascade.
func (s *Store) DeleteDocument(ctx context.Context, parentID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE identifier = ?", parentID); err != nil {
		return fmt.Errorf("deleting document %s: %w", parentID, err)
	}
	return nil
}

// GetChunk retrieves one chunk by its chunk ID.
func (s *Store) GetChunk(ctx context.Context, chunkID string) (*domain.ChunkRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT chunk_id, parent_identifier, sequence, chunk_text,
			original_filename, source_path_in_raw, parent_file_type,
			chunking_strategy, producer, classifications
		FROM chunks WHERE chunk_id = ?
	`, chunkID)

	var chunk domain.ChunkRecord
	var classJSON sql.NullString
	err := row.Scan(&chunk.ChunkID, &chunk.ParentIdentifier, &chunk.Metadata.Sequence,
		&chunk.Text, &chunk.OriginalFilename, &chunk.SourcePathInRaw,
		&chunk.Metadata.ParentFileType, &chunk.Metadata.Strategy,
		&chunk.Metadata.Producer, &classJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: chunk %s", domain.ErrNotFound, chunkID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting chunk %s: %w", chunkID, err)
	}

	if classJSON.Valid && classJSON.String != "" {
		var c domain.Classification
		if err := json.Unmarshal([]byte(classJSON.String), &c); err != nil {
			return nil, fmt.Errorf("decoding classifications for %s: %w", chunkID, err)
		}
		chunk.Classifications = &c
	}
	return &chunk, nil
}

// Counts returns the stored document and chunk totals.
func (s *Store) Counts(ctx context.Context) (documents, chunks int, err error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT (SELECT COUNT(*) FROM documents), (SELECT COUNT(*) FROM chunks)")
	if err := row.Scan(&documents, &chunks); err != nil {
		return 0, 0, fmt.Errorf("counting catalog rows: %w", err)
	}
	return documents, chunks, nil
}

// marshalClassification encodes labels as JSON text, nil as SQL NULL.
func marshalClassification(c *domain.Classification) (any, error) {
	if c == nil {
		return nil, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling classifications: %w", err)
	}
	return string(data), nil
}
