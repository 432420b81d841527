package cli

import (
	"context"
	"fmt"

	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/ai"
	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/artifacts"
	catalogsqlite "github.com/arkival-labs/arkival-cli/internal/adapters/driven/catalog/sqlite"
	configfile "github.com/arkival-labs/arkival-cli/internal/adapters/driven/config/file"
	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/convert"
	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/extract"
	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/manifest"
	"github.com/arkival-labs/arkival-cli/internal/connectors/filesystem"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
	"github.com/arkival-labs/arkival-cli/internal/core/services"
	"github.com/arkival-labs/arkival-cli/internal/logger"
	"github.com/arkival-labs/arkival-cli/internal/postprocessors"
	"github.com/arkival-labs/arkival-cli/internal/preparers"
)

// app wires the adapters behind the stage services for one invocation.
type app struct {
	settings   domain.Settings
	processed  *artifacts.Store
	classified *artifacts.Store
	chunks     *artifacts.Store
	classifier driven.Classifier
	catalog    driven.ChunkCatalog
}

// newApp loads settings and opens the artifact stores. The classifier
// is only constructed when withClassifier is set, so read-only commands
// never require API keys.
func newApp(ctx context.Context, withClassifier bool) (*app, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	processed, err := artifacts.NewStore(settings.ProcessedDir)
	if err != nil {
		return nil, err
	}
	classified, err := artifacts.NewStore(settings.ClassifiedDir)
	if err != nil {
		return nil, err
	}
	chunks, err := artifacts.NewStore(settings.ChunkDir)
	if err != nil {
		return nil, err
	}

	a := &app{
		settings:   settings,
		processed:  processed,
		classified: classified,
		chunks:     chunks,
	}

	if withClassifier {
		a.classifier, err = ai.CreateClassifier(ctx, settings)
		if err != nil {
			return nil, err
		}
	}

	// The catalog is a convenience index; an unopenable catalog
	// degrades to folder-only operation rather than failing the run.
	if settings.CatalogPath != "" {
		catalog, err := catalogsqlite.NewStore(settings.CatalogPath)
		if err != nil {
			logger.Warn("Chunk catalog unavailable: %v", err)
		} else {
			a.catalog = catalog
		}
	}
	return a, nil
}

// loadSettings reads the config file merged over defaults.
func loadSettings() (domain.Settings, error) {
	store := configfile.NewSettingsStore(flagConfig, flagDataDir)
	settings, err := store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// Close releases the classifier and catalog handles.
func (a *app) Close() {
	if a.classifier != nil {
		if err := a.classifier.Close(); err != nil {
			logger.Debug("Closing classifier: %v", err)
		}
	}
	if a.catalog != nil {
		if err := a.catalog.Close(); err != nil {
			logger.Debug("Closing catalog: %v", err)
		}
	}
}

// chunkSource is the chunk stage input: classified output when a
// classifier is configured, processed output otherwise.
func (a *app) chunkSource() driven.ArtifactStore {
	if a.settings.Classifier != "" {
		return a.classified
	}
	return a.processed
}

func (a *app) preparer() *preparers.Preparer {
	converter := convert.NewSoffice()
	if !converter.Available() {
		logger.Debug("LibreOffice not found, legacy files will not be converted")
		return preparers.New(a.settings.RawDir, nil)
	}
	return preparers.New(a.settings.RawDir, converter)
}

func (a *app) extractStage() *services.ExtractStage {
	return services.NewExtractStage(
		filesystem.New(a.settings.RawDir),
		extract.Defaults(),
		a.processed,
		manifest.NewStore(a.settings.ProcessedDir),
	)
}

func (a *app) classifyStage() *services.ClassifyStage {
	return services.NewClassifyStage(
		a.classifier,
		a.processed,
		a.classified,
		manifest.NewStore(a.settings.ClassifiedDir),
		a.settings.MaxClassifyChars,
	)
}

func (a *app) chunkStage() *services.ChunkStage {
	return services.NewChunkStage(
		a.chunkSource(),
		a.chunks,
		manifest.NewStore(a.settings.ChunkDir),
		postprocessors.FromSettings(a.settings),
		a.catalog,
		a.settings,
	)
}

func (a *app) runner() *services.Runner {
	return services.NewRunner(a.extractStage(), a.classifyStage(), a.chunkStage())
}
