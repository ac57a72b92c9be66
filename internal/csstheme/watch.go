package csstheme

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce is how long the source tree must stay quiet before a rebuild.
var watchDebounce = 100 * time.Millisecond

// Watch builds once, then rebuilds whenever a source file under
// config.SourceDir changes, until ctx is done. Every build, failed or not, is
// passed to onBuild. Rebuilds go through g, so unchanged sources are served
// from its cache.
func (g *Generator) Watch(ctx context.Context, config Config, onBuild func(*GenerateResult, error)) error {
	if err := validateStruct(config); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchTree(watcher, config.SourceDir); err != nil {
		return fmt.Errorf("watch %s: %w", config.SourceDir, err)
	}
	g.log.Info("watching sources", zap.String("dir", config.SourceDir))

	onBuild(g.Generate(config))

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						g.log.Warn("cannot watch directory", zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if event.Op == fsnotify.Chmod || !isSourceFile(config, event.Name) {
				continue
			}
			g.log.Debug("source changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			onBuild(g.Generate(config))
		}
	}
}

// watchTree adds root and every directory below it, hidden ones excepted.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// isSourceFile reports whether path matches one of the include patterns and
// is not build output.
func isSourceFile(config Config, path string) bool {
	if isGenerated(path) {
		return false
	}
	rel, err := filepath.Rel(config.SourceDir, path)
	if err != nil {
		return false
	}
	for _, pattern := range config.Includes {
		if ok, _ := doublestar.PathMatch(pattern, rel); ok {
			return true
		}
	}
	return false
}
