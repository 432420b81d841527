// Package manifest provides the JSON-file implementation of the
// manifest store.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ManifestStore = (*Store)(nil)

// Store persists one stage's manifest as a single indented JSON file
// inside the stage's artifact directory. There is one writer per run
// and no concurrency within a run; the mutex only guards against
// accidental concurrent use from tests.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// NewStore creates a manifest store at dir/_manifest.json.
func NewStore(dir string) *Store {
	return &Store{filePath: filepath.Join(dir, domain.ManifestFilename)}
}

// Load reads the manifest. A missing file yields an empty manifest; a
// corrupt file yields an empty manifest and a warning - the old
// artifacts then look orphaned and are regenerated, which is the safe
// direction to fail in.
func (s *Store) Load() domain.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Could not read manifest %s: %v. Starting with a new one.", s.filePath, err)
		}
		return domain.Manifest{}
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Warn("Manifest %s is corrupted: %v. Starting with a new one.", s.filePath, err)
		return domain.Manifest{}
	}
	if m == nil {
		m = domain.Manifest{}
	}
	return m
}

// Save writes the full manifest, overwriting the previous file. The
// parent directory is created if needed. A failure is returned for
// logging; callers treat it as non-fatal to the run.
func (s *Store) Save(m domain.Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", s.filePath, err)
	}
	return nil
}

// Filename returns the manifest's base filename.
func (s *Store) Filename() string {
	return filepath.Base(s.filePath)
}

// Path returns the full manifest path for logging.
func (s *Store) Path() string {
	return s.filePath
}
