// This file implements a file system watcher over the download root.
// The cache already expires on its TTL; the watcher narrows the window
// of staleness for out-of-band filesystem changes (manual copies,
// external tools) by clearing the cache shortly after they happen.

package library

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the download root for changes and clears the library
// cache after a debounce delay.
type Watcher struct {
	root          string
	cache         *Cache
	watcher       *fsnotify.Watcher
	mu            sync.Mutex
	debounceTimer *time.Timer
	debounceDelay time.Duration
	stopChan      chan struct{}
}

// NewWatcher creates a watcher for the given root.
func NewWatcher(root string, cache *Cache) *Watcher {
	return &Watcher{
		root:          root,
		cache:         cache,
		debounceDelay: 2 * time.Second, // Wait out bursts of events before invalidating
		stopChan:      make(chan struct{}),
	}
}

// Start begins watching the download root and all subdirectories.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}

	log.Printf("File watcher started for download root: %s", w.root)
	go w.processEvents()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	close(w.stopChan)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Chmod fires when folders are merely opened or browsed.
	if event.Op == fsnotify.Chmod {
		return
	}

	// Newly created directories need their own watch.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watcher.Add(event.Name)
		}
	}

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.invalidate)
	w.mu.Unlock()
}

func (w *Watcher) invalidate() {
	log.Println("File watcher detected changes, clearing library cache")
	w.cache.Clear()
}
