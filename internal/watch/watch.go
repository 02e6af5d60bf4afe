// Package watch reports changes to the deck input file.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/kpauljoseph/neurocards/pkg/logger"
)

// Watcher signals on Changes whenever the watched path is written, created,
// renamed or removed. Bursts of events collapse into a single signal.
type Watcher struct {
	fs      *fsnotify.Watcher
	target  string
	isDir   bool
	changes chan struct{}
	ignore  map[string]bool
	logger  *logger.Logger
}

// New watches path. For a file the parent directory is watched so editors
// that replace the file on save are still picked up.
func New(path string, log *logger.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := abs
	if !info.IsDir() {
		dir = filepath.Dir(abs)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		fs:      fs,
		target:  abs,
		isDir:   info.IsDir(),
		changes: make(chan struct{}, 1),
		ignore:  map[string]bool{},
		logger:  log,
	}, nil
}

// Ignore drops events for the given files. It must be called before Run.
func (w *Watcher) Ignore(paths ...string) {
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			w.ignore[abs] = true
		}
	}
}

func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run forwards relevant events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Trace("Input change: %s", ev)
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Info("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if w.ignore[name] {
		return false
	}
	if w.isDir {
		return true
	}
	return name == w.target
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}
