package preparers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arkival-labs/arkival-cli/internal/core/ports/driving"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// modernSibling maps legacy extensions to the modern format a
// conversion would produce, so an already-converted file can be
// detected without invoking the converter.
var modernSibling = map[string]string{
	".doc": ".docx",
	".xls": ".xlsx",
	".ppt": ".pptx",
}

// convertLegacy converts legacy-format files to modern equivalents via
// the injected converter. Conversion is skipped when a modern sibling
// already exists; the original is only returned for deletion when the
// converter confirmed success and the output is present on disk.
func (p *Preparer) convertLegacy(ctx context.Context, report *driving.PrepareReport) ([]string, error) {
	if p.converter == nil {
		return nil, nil
	}

	var candidates []string
	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && p.converter.CanConvert(path) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan for legacy files: %w", err)
	}

	var converted []string
	for _, src := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if sibling := expectedSibling(src); sibling != "" {
			if _, err := os.Stat(sibling); err == nil {
				logger.Debug("Skipping conversion, modern sibling exists: %s", src)
				continue
			}
		}

		dst, err := p.converter.Convert(ctx, src)
		if err != nil {
			logger.Warn("Could not convert legacy file %s: %v", src, err)
			report.Errors++
			continue
		}
		if _, err := os.Stat(dst); err != nil {
			logger.Warn("Converter reported %s but output %s is missing", src, dst)
			report.Errors++
			continue
		}

		logger.Info("Converted legacy file: %s -> %s", src, filepath.Base(dst))
		report.FilesConverted++
		converted = append(converted, src)
	}
	return converted, nil
}

// expectedSibling returns the modern counterpart path for a legacy
// file, or "" when the extension has no known mapping.
func expectedSibling(src string) string {
	ext := strings.ToLower(filepath.Ext(src))
	modern, ok := modernSibling[ext]
	if !ok {
		return ""
	}
	return strings.TrimSuffix(src, filepath.Ext(src)) + modern
}
