package preparers

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driving"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// expandArchives expands every archive in the tree into a sibling
// folder named after the archive stem. Only archives whose every entry
// extracted cleanly are returned for deletion; a partially expanded
// archive is kept so the next run can retry it.
func (p *Preparer) expandArchives(ctx context.Context, report *driving.PrepareReport) ([]string, error) {
	var archives []string
	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && domain.KindOf(path) == domain.KindArchive {
			archives = append(archives, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan for archives: %w", err)
	}

	var fullyExpanded []string
	for _, archive := range archives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := expandOne(archive); err != nil {
			logger.Warn("Could not expand archive %s: %v", archive, err)
			report.Errors++
			continue
		}
		logger.Info("Expanded archive: %s", archive)
		report.ArchivesExpanded++
		fullyExpanded = append(fullyExpanded, archive)
	}
	return fullyExpanded, nil
}

// expandOne extracts a zip archive into a sibling directory named after
// its stem. An existing sibling directory means a previous run already
// expanded it; the archive is then treated as fully expanded.
func expandOne(archivePath string) error {
	stem := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	targetDir := filepath.Join(filepath.Dir(archivePath), stem)

	if _, err := os.Stat(targetDir); err == nil {
		return nil
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if err := extractEntry(entry, targetDir); err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
	}
	return nil
}

// extractEntry writes one zip entry beneath targetDir, rejecting paths
// that escape it.
func extractEntry(entry *zip.File, targetDir string) error {
	dest := filepath.Join(targetDir, filepath.FromSlash(entry.Name))

	// Zip-slip guard.
	if !strings.HasPrefix(dest, filepath.Clean(targetDir)+string(os.PathSeparator)) {
		return fmt.Errorf("entry path escapes archive root")
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
