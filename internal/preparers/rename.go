package preparers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/arkival-labs/arkival-cli/internal/core/ports/driving"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// asciiFold decomposes accented characters and strips the combining
// marks, turning "relatório" into "relatorio".
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normaliseNames renames every file and directory beneath the root to
// a portable ASCII-safe form. Deepest paths rename first so parent
// renames never invalidate pending child paths. Collisions within a
// directory resolve by appending a numeric suffix before the extension.
func (p *Preparer) normaliseNames(ctx context.Context, report *driving.PrepareReport) error {
	var paths []string
	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != p.root {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan for renames: %w", err)
	}

	// Deepest first.
	sort.Slice(paths, func(i, j int) bool {
		return strings.Count(paths[i], string(os.PathSeparator)) >
			strings.Count(paths[j], string(os.PathSeparator))
	})

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		base := filepath.Base(path)
		normalised := NormaliseName(base)
		if normalised == base {
			continue
		}

		target := resolveCollision(filepath.Join(filepath.Dir(path), normalised))
		if err := os.Rename(path, target); err != nil {
			logger.Warn("Could not rename %s: %v", path, err)
			report.Errors++
			continue
		}
		logger.Debug("Renamed %s -> %s", base, filepath.Base(target))
		report.FilesRenamed++
	}
	return nil
}

// NormaliseName folds a single path component to ASCII-safe form:
// diacritics stripped, anything outside [A-Za-z0-9._-] replaced with an
// underscore, underscore runs collapsed.
func NormaliseName(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	lastUnderscore := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
			}
			lastUnderscore = true
		}
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "_"
	}
	return out
}

// resolveCollision appends _1, _2, ... before the extension until the
// target path is free.
func resolveCollision(target string) string {
	if _, err := os.Stat(target); err != nil {
		return target
	}

	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
