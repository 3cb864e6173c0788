// Package watch reloads the word list when the CSV changes on disk.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jhlucc/vocab-tui/internal/log"
)

// debounce collapses editor save bursts (write + chmod + rename) into a
// single reload.
const debounce = 200 * time.Millisecond

// Watcher observes one file and invokes onChange after each settled burst
// of modifications.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	onChange func()
	done     chan struct{}
}

// New starts watching path. fsnotify watches the parent directory because
// many editors replace the file instead of writing it in place, which would
// drop a direct file watch.
func New(path string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{fw: fw, path: abs, onChange: onChange, done: make(chan struct{})}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != filepath.Base(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			log.Debug("watch: %s changed, reloading", w.path)
			w.onChange()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warn("watch: %v", err)
		case <-w.done:
			return
		}
	}
}

// Stop ends the watch. Safe to call once.
func (w *Watcher) Stop() {
	close(w.done)
	w.fw.Close()
}
