package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
)

// FileWatcher reports changes to a set of files, such as a scene file and its textures.
// It watches the parent directories so files replaced by rename are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	files map[string]bool // Tracked absolute file paths
	dirs  map[string]bool // Directories added to the fsnotify watcher
	timer *time.Timer
}

// NewFileWatcher creates a watcher that coalesces changes arriving within debounce
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

// SetFiles replaces the tracked set. Directories no longer needed are released.
func (fw *FileWatcher) SetFiles(files []string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	newFiles := make(map[string]bool, len(files))
	newDirs := make(map[string]bool)
	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		newFiles[absPath] = true
		newDirs[filepath.Dir(absPath)] = true
	}

	for dir := range newDirs {
		if fw.dirs[dir] {
			continue
		}
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		fw.dirs[dir] = true
	}
	for dir := range fw.dirs {
		if newDirs[dir] {
			continue
		}
		if err := fw.watcher.Remove(dir); err != nil {
			glog.Warningf("failed to stop watching %s: %v", dir, err)
		}
		delete(fw.dirs, dir)
	}

	fw.files = newFiles
	return nil
}

// Files returns the tracked absolute paths
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	files := make([]string, 0, len(fw.files))
	for file := range fw.files {
		files = append(files, file)
	}
	return files
}

// Run delivers debounced change notifications to onChange until ctx is done or the watcher is closed.
// onChange receives the last changed path of each burst.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(path string)) error {
	defer fw.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			// Editors that save by rename show up as Create on the target
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.handleFileChange(ctx, event.Name, onChange)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			glog.Errorf("watcher error: %v", err)
		}
	}
}

// handleFileChange restarts the debounce timer for a tracked file
func (fw *FileWatcher) handleFileChange(ctx context.Context, filePath string, onChange func(string)) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.files[filepath.Clean(filePath)] {
		return
	}

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		glog.V(1).Infof("change detected: %s", filePath)
		onChange(filePath)
	})
}

func (fw *FileWatcher) stopTimer() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
