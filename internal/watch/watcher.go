package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codelaunch/internal/catalog"
	"codelaunch/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for the directory to settle
// before reporting a change.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a workspace root, including its subdirectories, and
// reports when the set of workspace files may have changed. Bursts of
// events are collapsed into one notification.
type Watcher struct {
	root     string
	debounce time.Duration

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Channel to signal stop
	stopChan chan struct{}
	done     chan struct{}

	// Lock for running state and the watched directory list
	mutex sync.Mutex

	running     bool
	directories map[string]struct{}
	timer       *time.Timer
}

// New creates a watcher for root. A non-positive debounce selects
// DefaultDebounce.
func New(root string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		root:        root,
		debounce:    debounce,
		fsWatcher:   fsWatcher,
		directories: make(map[string]struct{}),
	}, nil
}

// Start registers the root tree and begins delivering change
// notifications. onChange runs on the watcher's own goroutine.
func (w *Watcher) Start(onChange func()) error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.mutex.Unlock()

	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", w.root)
	}
	if err := w.addTree(w.root); err != nil {
		return err
	}

	w.mutex.Lock()
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	w.mutex.Unlock()

	go w.loop(onChange)

	log.LogWithFields(log.F("directory", w.root)).Info("Watching workspace directory")
	return nil
}

func (w *Watcher) loop(onChange func()) {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.schedule(onChange)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// relevant reports whether event can change the catalog. New directories
// are added to the watch list as a side effect.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				log.LogWithFields(log.F("directory", event.Name), log.F("error", err)).Warn("cannot watch new directory")
			}
			return true
		}
	}
	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		if w.forget(event.Name) {
			return true
		}
	}
	if !catalog.IsWorkspaceFile(filepath.Base(event.Name)) {
		return false
	}
	return event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
}

func (w *Watcher) schedule(onChange func()) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if w.IsRunning() {
			log.Debug("workspace directory changed")
			onChange()
		}
	})
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("failed to add directory %s to watcher: %w", path, err)
		}
		w.mutex.Lock()
		w.directories[path] = struct{}{}
		w.mutex.Unlock()
		return nil
	})
}

// forget drops a removed directory from the list and reports whether it
// was being watched. fsnotify removes the watch itself.
func (w *Watcher) forget(path string) bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if _, ok := w.directories[path]; !ok {
		return false
	}
	delete(w.directories, path)
	return true
}

// Stop halts the watcher and waits for its goroutine to exit. A pending
// notification is cancelled.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.stopChan)
	done := w.done
	w.mutex.Unlock()

	<-done
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	log.Info("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.running
}

// GetDirectories returns the directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	dirs := make([]string, 0, len(w.directories))
	for dir := range w.directories {
		dirs = append(dirs, dir)
	}
	return dirs
}
