package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/litescript/ls-starfield/internal/logging"
)

// FileSource drives a Signal from a small text file containing "dark" or
// "light". Any process can flip the theme by rewriting the file.
type FileSource struct {
	path    string
	signal  *Signal
	logger  *logging.Logger
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	done    chan struct{}
	stopped chan struct{}
}

// NewFileSource creates a source for path. Nothing is read until Start.
func NewFileSource(path string, signal *Signal, logger *logging.Logger) *FileSource {
	if logger == nil {
		logger = logging.Discard()
	}
	return &FileSource{
		path:   path,
		signal: signal,
		logger: logger.With("theme"),
	}
}

// Path returns the watched file path.
func (fs *FileSource) Path() string {
	return fs.path
}

// Load reads the file once and applies its mode to the signal.
func (fs *FileSource) Load() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return fmt.Errorf("read theme file: %w", err)
	}
	mode, err := ParseMode(string(data))
	if err != nil {
		return err
	}
	fs.signal.Set(mode)
	return nil
}

// Start applies the current file content (if any) and begins watching.
// Calling Start on a running source does nothing.
func (fs *FileSource) Start() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.running {
		return nil
	}

	if err := fs.Load(); err != nil {
		// A missing file is fine: it may be created later.
		fs.logger.Debug("initial theme load skipped: %v", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create theme watcher: %w", err)
	}
	// Watch the directory: editors replace files rather than write in place.
	if err := w.Add(filepath.Dir(fs.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch theme dir: %w", err)
	}

	fs.watcher = w
	fs.running = true
	fs.done = make(chan struct{})
	fs.stopped = make(chan struct{})
	go fs.watch(w, fs.done, fs.stopped)

	fs.logger.Debug("watching %s", fs.path)
	return nil
}

func (fs *FileSource) watch(w *fsnotify.Watcher, done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	name := filepath.Base(fs.path)

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := fs.Load(); err != nil {
					fs.logger.Warn("ignoring theme file change: %v", err)
					continue
				}
				fs.logger.Info("theme set to %s from %s", fs.signal.Mode(), fs.path)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			fs.logger.Warn("theme watcher error: %v", err)

		case <-done:
			return
		}
	}
}

// Stop ends watching. Safe to call more than once.
func (fs *FileSource) Stop() error {
	fs.mu.Lock()
	if !fs.running {
		fs.mu.Unlock()
		return nil
	}
	fs.running = false
	close(fs.done)
	w := fs.watcher
	stopped := fs.stopped
	fs.mu.Unlock()

	err := w.Close()
	<-stopped
	return err
}
