package app

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// LayoutWatcher reports edits to a layout file. The parent directory is
// watched so editors that save by rename are still seen.
type LayoutWatcher struct {
	path     string
	debounce time.Duration
	onChange func(path string)

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewLayoutWatcher creates a watcher for path. onChange runs on the
// watcher goroutine once a burst of writes has settled.
func NewLayoutWatcher(path string, onChange func(path string)) (*LayoutWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return &LayoutWatcher{
		path:     abs,
		debounce: 200 * time.Millisecond,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *LayoutWatcher) Path() string {
	return w.path
}

// Start begins watching.
func (w *LayoutWatcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = watcher

	w.wg.Add(1)
	go w.watchLoop()
	log.Printf("Watcher: watching %s", w.path)
	return nil
}

// Stop ends watching and waits for the watch goroutine to exit.
func (w *LayoutWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.watcher != nil {
			w.watcher.Close()
		}
	})
	w.wg.Wait()
}

func (w *LayoutWatcher) watchLoop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			log.Printf("Watcher: %s changed", filepath.Base(w.path))
			if w.onChange != nil {
				w.onChange(w.path)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher: %v", err)
		}
	}
}
