package deck

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/glide/internal/safego"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a deck file. It watches the parent directory so
// atomic saves (write to temp, rename over) are seen as well.
type Watcher struct {
	watcher *fsnotify.Watcher

	path string
	dir  string

	onChanged func(path string)
	debounce  time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher starts watching path. onChanged runs on the debounce timer's
// goroutine; callers hand the event to their UI loop.
func NewWatcher(path string, onChanged func(path string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:   watcher,
		path:      filepath.Clean(path),
		onChanged: onChanged,
		debounce:  DefaultDebounce,
	}
	w.dir = filepath.Dir(w.path)
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return w, nil
}

// Run pumps filesystem events until ctx is done or the watcher is closed.
// A watcher error ends the run; calling Run again resumes reading events.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isDeckEvent(event) {
				w.scheduleNotify()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			// Events may have been dropped; reload to be safe.
			w.scheduleNotify()
			return fmt.Errorf("watch %s: %w", w.path, err)
		}
	}
}

// Close stops the watcher and drops any pending notification.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		if w.watcher != nil {
			err = w.watcher.Close()
		}
	})
	return err
}

func (w *Watcher) isDeckEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleNotify() {
	if w.onChanged == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	safego.Run("deck-watcher.notify", func() { w.onChanged(w.path) })
}
