package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yourtionguo/codegraf/internal/logging"
	"github.com/yourtionguo/codegraf/internal/pipeline"
)

func TestIsRelevantChange(t *testing.T) {
	cases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"kotlin write", fsnotify.Event{Name: "Main.kt", Op: fsnotify.Write}, true},
		{"markdown write", fsnotify.Event{Name: "README.md", Op: fsnotify.Write}, false},
		{"typescript create", fsnotify.Event{Name: "index.ts", Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: "Main.kt", Op: fsnotify.Chmod}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isRelevantChange(c.ev); got != c.want {
				t.Errorf("isRelevantChange(%+v) = %v, want %v", c.ev, got, c.want)
			}
		})
	}
}

func TestAddDirsRecursive_SkipsVendoredDirs(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "src"))
	mustMkdir(t, filepath.Join(root, "node_modules", "pkg"))

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer fsw.Close()

	if err := addDirsRecursive(fsw, root); err != nil {
		t.Fatalf("addDirsRecursive: %v", err)
	}

	watched := fsw.WatchList()
	for _, p := range watched {
		if filepath.Base(filepath.Dir(p)) == "node_modules" || filepath.Base(p) == "node_modules" {
			t.Errorf("expected node_modules to be skipped, got watched path %s", p)
		}
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func TestWatcher_Start_RunsOnceUpFrontAndOnChange(t *testing.T) {
	root := t.TempDir()

	var runs int32
	run := func(ctx context.Context) (*pipeline.Stats, error) {
		atomic.AddInt32(&runs, 1)
		return &pipeline.Stats{}, nil
	}

	w := New(root, run, logging.NewSilent())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the initial synchronous run a moment to land, then trigger a
	// file-system change and wait for the debounced re-run.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(root, "Main.kt"), []byte("fun main() {}"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	time.Sleep(debounceInterval + 200*time.Millisecond)
	cancel()
	<-done

	if got := atomic.LoadInt32(&runs); got < 2 {
		t.Errorf("expected at least 2 runs (initial + debounced), got %d", got)
	}
}
