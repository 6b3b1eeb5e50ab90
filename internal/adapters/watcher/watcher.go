// Package watcher notifies when the environment descriptor changes on disk.
package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the default quiet period before a change is reported.
const DefaultDebounceWindow = 100 * time.Millisecond

const eventChannelBuffer = 8

// Watcher reports debounced changes of a single file.
//
// The parent directory is watched rather than the file itself, so that
// editors which save by renaming a temporary file over the original keep
// being observed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	window    time.Duration
	path      string
	lastOp    ports.WatchOp
	ready     chan struct{}
	events    chan ports.WatchEvent
}

// NewWatcher creates a new descriptor watcher.
func NewWatcher(logger ports.Logger, window time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	return &Watcher{
		fsWatcher: w,
		logger:    logger,
		window:    window,
		ready:     make(chan struct{}, 1),
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the file at path.
func (w *Watcher) Start(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", path)
	}
	w.path = abs

	if err := w.fsWatcher.Add(filepath.Dir(abs)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", path)
	}

	debouncer := NewDebouncer(w.window, func([]string) {
		select {
		case w.ready <- struct{}{}:
		default:
		}
	})

	go w.processEvents(ctx, debouncer)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of debounced change events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

//nolint:cyclop // One select over fsnotify, debouncer and context channels.
func (w *Watcher) processEvents(ctx context.Context, debouncer *Debouncer) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			op, ok := convertOp(event.Op)
			if !ok {
				continue
			}
			w.lastOp = op
			debouncer.Add(event.Name)
		case <-w.ready:
			select {
			case w.events <- ports.WatchEvent{Path: w.path, Operation: w.lastOp}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: " + err.Error())
		}
	}
}

func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}
