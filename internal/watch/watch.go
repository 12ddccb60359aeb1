// Package watch re-lints kernel sources as they change on disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval batches the event bursts editors emit on save.
const debounceInterval = 100 * time.Millisecond

// Watcher watches directory trees for Python file changes and invokes a
// callback for each changed file once the burst settles.
type Watcher struct {
	roots    []string
	onChange func(path string)
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

// New creates a watcher over the given directory roots. onChange runs on
// the debounce goroutine, one call per changed file.
func New(roots []string, logger *slog.Logger, onChange func(path string)) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		roots:    roots,
		onChange: onChange,
		logger:   logger,
		pending:  make(map[string]struct{}),
	}
}

// Run blocks until ctx is canceled. Watch errors are logged, not fatal.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range w.roots {
		if err := w.addRecursive(watcher, root); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
				// New directories join the watch so nested files are seen.
				if event.Op&fsnotify.Create != 0 {
					if addErr := w.addRecursive(watcher, event.Name); addErr != nil {
						w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", addErr)
					}
				}
				continue
			}
			if filepath.Ext(event.Name) != ".py" {
				continue
			}
			w.schedule(event.Name)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "error", watchErr)
		}
	}
}

// addRecursive adds root and every non-hidden subdirectory to the watcher.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (name == "node_modules" || name == "__pycache__" || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceInterval, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	sort.Strings(paths)
	for _, p := range paths {
		w.onChange(p)
	}
}
