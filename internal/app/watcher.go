package app

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kk-code-lab/rtab/internal/logging"
)

var watchLog = logging.ForComponent(logging.CompWatch)

const watchDebounce = 150 * time.Millisecond

// dirChanged is posted (inside a tcell.EventInterrupt) when a watched
// directory's contents change.
type dirChanged struct {
	Dir string
}

// dirWatcher follows a single directory, non-recursively, and reports
// debounced changes through post. It never touches listings itself.
type dirWatcher struct {
	fsWatcher *fsnotify.Watcher
	post      func(dir string)
	stop      chan struct{}

	mu       sync.Mutex
	dir      string
	debounce *time.Timer
	closed   bool
}

func newDirWatcher(post func(dir string)) (*dirWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &dirWatcher{
		fsWatcher: fsw,
		post:      post,
		stop:      make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Watch switches the watcher to dir. Watching the same directory again is a
// no-op.
func (w *dirWatcher) Watch(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || dir == w.dir {
		return
	}
	if w.dir != "" {
		_ = w.fsWatcher.Remove(w.dir)
	}
	w.dir = ""
	if err := w.fsWatcher.Add(dir); err != nil {
		watchLog.Debug("watch_failed", "dir", dir, "error", err)
		return
	}
	w.dir = dir
}

func (w *dirWatcher) run() {
	for {
		select {
		case <-w.stop:
			return
		case _, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.schedule()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			watchLog.Debug("watch_error", "error", err)
		}
	}
}

func (w *dirWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	dir := w.dir
	w.debounce = time.AfterFunc(watchDebounce, func() {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if !closed && dir != "" {
			w.post(dir)
		}
	})
}

// Close stops the watcher.
func (w *dirWatcher) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()

	close(w.stop)
	_ = w.fsWatcher.Close()
}
