// Package watcher reloads the topology definition when it changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vatne/archmap/pkg/logging"
)

// ChangeEvent signals that the topology file was written.
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// FileWatcher watches a single topology file. The parent directory is
// watched rather than the file itself because most editors replace the
// file via rename on save, which would silently detach a file-level watch.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
}

// New creates a watcher for the topology file at path.
func New(path string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("resolving topology path: %w", err)
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		watcher: w,
		path:    abs,
		events:  make(chan ChangeEvent, 16),
	}, nil
}

// Events returns the raw change stream. Wrap it with a Debouncer before
// triggering reloads.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Start begins forwarding file system events. It returns immediately; the
// watch loop runs until the context is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) {
	logging.Info("watching topology file", "path", fw.path)
	go fw.run(ctx)
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer fw.watcher.Close()
	defer close(fw.events)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(ev) {
				continue
			}
			logging.Debug("topology file changed", "op", ev.Op.String())
			select {
			case fw.events <- ChangeEvent{Path: fw.path, Timestamp: time.Now()}:
			default:
				// Channel full: a reload is already pending.
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}

// relevant filters directory events down to writes of the watched file.
func (fw *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != fw.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}
