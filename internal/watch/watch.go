// Package watch reports writes to a single file made by other processes.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/idilsaglam/todo/internal/log"
)

// Watcher coalesces change events for one file into Changes.
// The parent directory is watched so atomic rename-over writes are seen.
type Watcher struct {
	w       *fsnotify.Watcher
	target  string
	changes chan struct{}
	done    chan struct{}
}

func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		w:       fw,
		target:  abs,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes receives at most one pending signal; it is closed by Close.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

func (w *Watcher) Close() error {
	err := w.w.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("todo file changed")
			select {
			case w.changes <- struct{}{}:
			default: // a signal is already pending
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher")
		}
	}
}
