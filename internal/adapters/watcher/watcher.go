// Package watcher reports source changes for watch mode.
package watcher

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the default quiet period before a batch is delivered.
const DefaultDebounceWindow = 50 * time.Millisecond

// DefaultIgnores are directory names that are never watched.
var DefaultIgnores = []string{".kiln", "node_modules"}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	walker  *fs.Walker
	logger  ports.Logger
	window  time.Duration
	ignores []string
}

// New creates a new Watcher.
func New(walker *fs.Walker, logger ports.Logger, window time.Duration, ignores []string) *Watcher {
	return &Watcher{
		walker:  walker,
		logger:  logger,
		window:  window,
		ignores: ignores,
	}
}

// Watch adds every directory below roots and starts delivering batches.
func (w *Watcher) Watch(ctx context.Context, roots []string) (<-chan []string, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create watcher")
	}

	for _, root := range roots {
		for dir := range w.walker.WalkDirs(root, w.ignores) {
			if err := fw.Add(dir); err != nil {
				_ = fw.Close()
				return nil, zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
			}
		}
	}

	out := make(chan []string, 1)
	go w.loop(ctx, fw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- []string) {
	defer close(out)
	defer func() { _ = fw.Close() }()

	d := NewDebouncer(w.window)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			d.Add(event.Name)

			// New directories are not covered by the existing watches.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					for dir := range w.walker.WalkDirs(event.Name, w.ignores) {
						_ = fw.Add(dir)
					}
				}
			}

		case <-d.C():
			batch := d.Drain()
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.Wrap(err, "file system watch error"))
		}
	}
}
