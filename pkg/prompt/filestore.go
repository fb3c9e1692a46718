package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileStore serves reference documents from a local directory, keeping
// their contents cached in memory. Document <name> is read from
// <dir>/<name>.md (falling back to <dir>/<name>.txt). When watching is
// enabled, edits to the directory refresh the cache without a restart.
type FileStore struct {
	dir     string
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	mu   sync.RWMutex
	docs map[string]string

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewFileStore creates a file-backed document store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("document directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("document path %q is not a directory", dir)
	}

	fs := &FileStore{
		dir:    dir,
		logger: slog.Default().With("component", "prompt.filestore"),
		docs:   make(map[string]string),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	fs.reloadAll()
	return fs, nil
}

// Fetch returns the cached document body.
func (fs *FileStore) Fetch(ctx context.Context, name string) (string, error) {
	fs.mu.RLock()
	body, ok := fs.docs[name]
	fs.mu.RUnlock()

	if !ok {
		return "", &FetchError{Name: name, Cause: os.ErrNotExist}
	}
	return body, nil
}

// Watch starts refreshing the cache on file changes. It returns after
// the watcher is installed; refreshes happen in the background until
// the context is cancelled or Close is called.
func (fs *FileStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(fs.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %q: %w", fs.dir, err)
	}
	fs.watcher = watcher

	fs.logger.Info("document watcher started", "dir", fs.dir)

	go func() {
		defer close(fs.doneCh)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case <-fs.stopCh:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				fs.logger.Debug("document change detected", "file", event.Name, "op", event.Op.String())
				fs.reloadAll()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fs.logger.Warn("document watcher error", "error", err)
			}
		}
	}()

	return nil
}

// reloadAll re-reads every document file in the directory.
func (fs *FileStore) reloadAll() {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		fs.logger.Warn("failed to read document directory", "dir", fs.dir, "error", err)
		return
	}

	docs := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".md" && ext != ".txt" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		body, err := os.ReadFile(filepath.Join(fs.dir, entry.Name()))
		if err != nil {
			fs.logger.Warn("failed to read document", "file", entry.Name(), "error", err)
			continue
		}
		docs[name] = string(body)
	}

	fs.mu.Lock()
	fs.docs = docs
	fs.mu.Unlock()

	fs.logger.Debug("documents reloaded", "count", len(docs))
}

// Close stops the watcher, if one was started.
func (fs *FileStore) Close() error {
	if fs.watcher == nil {
		return nil
	}
	close(fs.stopCh)
	<-fs.doneCh
	return nil
}
