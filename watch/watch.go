// Package watch re-runs an action whenever a single file is saved.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches the directory containing a file so that editors which save
// by writing a temp file and renaming it are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	log      logrus.FieldLogger
	fs       *fsnotify.Watcher
}

// New starts watching path's parent directory. Events that arrive before Run
// is called are buffered.
func New(path string, debounce time.Duration, log logrus.FieldLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, debounce: debounce, log: log, fs: fsw}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Close stops watching.
func (w *Watcher) Close() error { return w.fs.Close() }

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

// Run calls onChange once per debounced burst of saves until ctx is done.
// Calls never overlap. An error from onChange is logged and watching goes on.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context) error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.WithField("op", ev.Op.String()).Debug("transcript changed")
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")

		case <-timer.C:
			if err := onChange(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.log.WithError(err).Error("re-render failed")
			}
		}
	}
}
