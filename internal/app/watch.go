package app

import (
	"os"
	"sync"
	"time"
)

// FileWatcher polls a file's modification time and invokes a callback each
// time the file is rewritten. It is used to pick up dictionary edits
// without restarting.
type FileWatcher struct {
	path          string
	checkInterval time.Duration

	mu       sync.Mutex
	baseline time.Time
	onChange func()
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewFileWatcher creates a watcher for path. Returns nil if the file cannot
// be stat'ed.
func NewFileWatcher(path string, checkInterval time.Duration) *FileWatcher {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return &FileWatcher{
		path:          path,
		checkInterval: checkInterval,
		baseline:      info.ModTime(),
		stopCh:        make(chan struct{}),
	}
}

// OnChange sets the callback. It runs on the watcher goroutine.
func (w *FileWatcher) OnChange(callback func()) {
	w.mu.Lock()
	w.onChange = callback
	w.mu.Unlock()
}

// Start begins polling in a background goroutine.
func (w *FileWatcher) Start() {
	go w.watchLoop()
}

// Stop ends polling. It is safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// Path returns the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

func (w *FileWatcher) watchLoop() {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check compares the file's modification time against the baseline and
// fires the callback if it moved forward. It reports whether it fired.
func (w *FileWatcher) Check() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	if !info.ModTime().After(w.baseline) {
		w.mu.Unlock()
		return false
	}
	w.baseline = info.ModTime()
	cb := w.onChange
	w.mu.Unlock()

	if cb != nil {
		cb()
	}
	return true
}
