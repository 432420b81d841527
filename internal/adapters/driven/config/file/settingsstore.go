// Package file provides the TOML-backed settings store.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore reads and writes pipeline settings as a TOML file.
// Values absent from the file keep their defaults, so a minimal config
// can set just the knobs it cares about.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	dataDir  string
}

// fileSettings is the on-disk TOML shape. Every field is optional.
type fileSettings struct {
	DataDir string `toml:"data_dir,omitempty"`

	Folders struct {
		Raw        string `toml:"raw,omitempty"`
		Processed  string `toml:"processed,omitempty"`
		Classified string `toml:"classified,omitempty"`
		Chunks     string `toml:"chunks,omitempty"`
		Catalog    string `toml:"catalog,omitempty"`
	} `toml:"folders,omitempty"`

	Chunking struct {
		TextSize       int `toml:"text_size,omitempty"`
		TextOverlap    int `toml:"text_overlap,omitempty"`
		TableThreshold int `toml:"table_threshold,omitempty"`
		TableRows      int `toml:"table_rows,omitempty"`
	} `toml:"chunking,omitempty"`

	Classifier struct {
		Provider string `toml:"provider,omitempty"`
		Model    string `toml:"model,omitempty"`
		MaxChars int    `toml:"max_chars,omitempty"`
	} `toml:"classifier,omitempty"`
}

// NewSettingsStore creates a store backed by configPath. dataDir is the
// default working root used when the file does not override it.
func NewSettingsStore(configPath, dataDir string) *SettingsStore {
	return &SettingsStore{filePath: configPath, dataDir: dataDir}
}

// Path returns the backing file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// Load returns the stored settings merged over defaults. A missing file
// yields pure defaults; a malformed file is an error.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fc fileSettings
	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No config file; defaults apply.
	case err != nil:
		return domain.Settings{}, fmt.Errorf("read config %s: %w", s.filePath, err)
	default:
		if err := toml.Unmarshal(data, &fc); err != nil {
			return domain.Settings{}, fmt.Errorf("parse config %s: %w", s.filePath, err)
		}
	}

	dataDir := s.dataDir
	if fc.DataDir != "" {
		dataDir = fc.DataDir
	}
	settings := domain.DefaultSettings(dataDir)

	if fc.Folders.Raw != "" {
		settings.RawDir = fc.Folders.Raw
	}
	if fc.Folders.Processed != "" {
		settings.ProcessedDir = fc.Folders.Processed
	}
	if fc.Folders.Classified != "" {
		settings.ClassifiedDir = fc.Folders.Classified
	}
	if fc.Folders.Chunks != "" {
		settings.ChunkDir = fc.Folders.Chunks
	}
	if fc.Folders.Catalog != "" {
		settings.CatalogPath = fc.Folders.Catalog
	}
	if fc.Chunking.TextSize > 0 {
		settings.TextChunkSize = fc.Chunking.TextSize
	}
	if fc.Chunking.TextOverlap > 0 {
		settings.TextChunkOverlap = fc.Chunking.TextOverlap
	}
	if fc.Chunking.TableThreshold > 0 {
		settings.TableSingleChunkThreshold = fc.Chunking.TableThreshold
	}
	if fc.Chunking.TableRows > 0 {
		settings.TableRowsPerChunk = fc.Chunking.TableRows
	}
	if fc.Classifier.Provider != "" {
		settings.Classifier = fc.Classifier.Provider
	}
	if fc.Classifier.Model != "" {
		settings.ClassifierModel = fc.Classifier.Model
	}
	if fc.Classifier.MaxChars > 0 {
		settings.MaxClassifyChars = fc.Classifier.MaxChars
	}
	return settings, nil
}

// Save persists the settings as TOML.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fc fileSettings
	fc.DataDir = settings.DataDir
	fc.Folders.Raw = settings.RawDir
	fc.Folders.Processed = settings.ProcessedDir
	fc.Folders.Classified = settings.ClassifiedDir
	fc.Folders.Chunks = settings.ChunkDir
	fc.Folders.Catalog = settings.CatalogPath
	fc.Chunking.TextSize = settings.TextChunkSize
	fc.Chunking.TextOverlap = settings.TextChunkOverlap
	fc.Chunking.TableThreshold = settings.TableSingleChunkThreshold
	fc.Chunking.TableRows = settings.TableRowsPerChunk
	fc.Classifier.Provider = settings.Classifier
	fc.Classifier.Model = settings.ClassifierModel
	fc.Classifier.MaxChars = settings.MaxClassifyChars

	data, err := toml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", s.filePath, err)
	}
	return nil
}
