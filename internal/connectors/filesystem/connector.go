// Package filesystem provides the local source-tree connector.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// Ensure Connector implements the interfaces.
var (
	_ driven.SourceConnector = (*Connector)(nil)
	_ driven.SourceWatcher   = (*Connector)(nil)
)

// Connector enumerates a prepared source tree on the local filesystem.
// Hidden files and directories (dot-prefixed) are ignored.
type Connector struct {
	root string
}

// New creates a connector rooted at root.
func New(root string) *Connector {
	return &Connector{root: root}
}

// Root returns the tree root.
func (c *Connector) Root() string {
	return c.root
}

// List walks the tree and returns every visible file in
// directory-listing order, with its kind resolved from the extension.
func (c *Connector) List(ctx context.Context) ([]domain.SourceFile, error) {
	var files []domain.SourceFile

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") && path != c.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}
		files = append(files, domain.SourceFile{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Kind:    domain.KindOf(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", c.root, err)
	}
	return files, nil
}

// Watch invokes notify for every create, write, rename or remove
// beneath the root until ctx is cancelled. New subdirectories are added
// to the watch as they appear. Debouncing is the caller's concern.
func (c *Connector) Watch(ctx context.Context, notify func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the root and every existing subdirectory.
	err = filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", c.root, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// Best effort: a directory created mid-watch joins the
				// watch set so its contents are seen too.
				if err := watcher.Add(event.Name); err != nil {
					logger.Debug("Could not watch %s: %v", event.Name, err)
				}
			}
			notify(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
