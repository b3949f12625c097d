// Package watch is a debounced fsnotify wrapper around the batch
// orchestrator: on file-system change it re-runs the whole pipeline pass,
// it never diffs or re-indexes a single file (SPEC_FULL.md §4 — this is
// explicitly not incremental indexing, spec.md's Non-goals still hold).
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yourtionguo/codegraf/internal/logging"
	"github.com/yourtionguo/codegraf/internal/pipeline"
)

const debounceInterval = 300 * time.Millisecond

// RunFunc executes one full batch pass and reports its stats, the shape
// *pipeline.Orchestrator.Run satisfies.
type RunFunc func(ctx context.Context) (*pipeline.Stats, error)

// Watcher re-triggers run on relevant file-system changes under root,
// debounced so a burst of saves collapses into a single run.
type Watcher struct {
	root   string
	run    RunFunc
	logger *logging.Logger
}

func New(root string, run RunFunc, logger *logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewSilent()
	}
	return &Watcher{root: root, run: run, logger: logger}
}

// Start blocks, running run once up front and again after every
// debounced burst of changes, until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	if err := addDirsRecursive(fsw, w.root); err != nil {
		return fmt.Errorf("watching directories under %s: %w", w.root, err)
	}

	w.triggerRun(ctx)

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isRelevantChange(event) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				w.triggerRun(ctx)
			})
			if event.Has(fsnotify.Create) {
				addIfDirectory(fsw, event.Name)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithFields("file watcher error", logging.Field{Key: "error", Value: err.Error()})
		}
	}
}

func (w *Watcher) triggerRun(ctx context.Context) {
	stats, err := w.run(ctx)
	if err != nil {
		w.logger.ErrorWithFields("watch run failed", err)
		return
	}
	w.logger.InfoWithFields("watch run complete",
		logging.Field{Key: "files_parsed", Value: stats.FilesParsed},
		logging.Field{Key: "nodes_created", Value: stats.NodesCreated},
		logging.Field{Key: "relationships_created", Value: stats.RelationshipsCreated},
	)
}

func isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	_, ok := pipeline.LanguageForExt(filepath.Ext(event.Name))
	return ok
}

func addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	cfg := pipeline.DefaultDiscoveryConfig()
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path != root {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && isSkippedDirName(info.Name(), cfg.SkipDirs) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func isSkippedDirName(name string, skipDirs []string) bool {
	for _, d := range skipDirs {
		if name == d {
			return true
		}
	}
	return false
}

func addIfDirectory(fsw *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	_ = fsw.Add(path)
}
