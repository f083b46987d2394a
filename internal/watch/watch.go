// Package watch reports changes made to the store file by other processes.
package watch

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Event is a change to the watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher watches a single file. The file's directory is watched rather
// than the file itself because atomic writes replace the file by rename.
type Watcher struct {
	path   string
	logger *log.Logger
	events chan Event
}

// New returns a watcher for path. A nil logger discards output.
func New(path string, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Watcher{
		path:   filepath.Clean(path),
		logger: logger,
		events: make(chan Event, 16),
	}
}

// Events is closed when the watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}

	go func() {
		defer fsw.Close()
		defer close(w.events)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != w.path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				w.logger.Debug("store file changed", "path", ev.Name, "op", ev.Op.String())
				// Drop the event when a reload is already pending.
				select {
				case w.events <- Event{Path: ev.Name, Op: ev.Op}:
				default:
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				w.logger.Error("store watcher error", "error", err)
			}
		}
	}()
	return nil
}
