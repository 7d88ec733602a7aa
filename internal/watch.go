package internal

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-runs a query whenever one of its source files is written.
// Parent directories are watched rather than the files themselves so
// editors that replace files on save keep triggering events.
type Watcher struct {
	watcher    *fsnotify.Watcher
	files      map[string]bool
	onChange   func(path string)
	logger     *zap.Logger
	isWatching bool
}

// NewWatcher prepares a watcher over the given files. onChange is
// invoked with the path of each changed file, after a short debounce.
func NewWatcher(files []string, onChange func(path string), logger *zap.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsWatcher.Close()
			return nil, err
		}
		watched[abs] = true
	}

	return &Watcher{
		watcher:  fsWatcher,
		files:    watched,
		onChange: onChange,
		logger:   logger,
	}, nil
}

func (w *Watcher) Start() error {
	if w.isWatching {
		return fmt.Errorf("already watching")
	}

	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.isWatching = true
	go w.watchLoop()
	return nil
}

func (w *Watcher) Stop() error {
	if !w.isWatching {
		w.logger.Warn("not watching")
	}
	w.isWatching = false
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.files[abs] {
		return
	}
	// wait a moment so rapid successive writes coalesce into one run
	time.Sleep(100 * time.Millisecond)
	w.onChange(abs)
}
