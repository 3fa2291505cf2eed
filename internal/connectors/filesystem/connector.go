// Package filesystem walks and watches a local directory so its files can be
// ingested and kept up to date.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// DefaultDebounce is how long a path must be quiet before its change is emitted.
const DefaultDebounce = 100 * time.Millisecond

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("connector closed")

// Option configures a Connector.
type Option func(*Connector)

// WithDebounce sets the quiet period used to coalesce bursts of events.
func WithDebounce(d time.Duration) Option {
	return func(c *Connector) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// Connector lists and watches the visible regular files under a root directory.
// Hidden files and directories (dot-prefixed) are skipped.
type Connector struct {
	rootPath string
	debounce time.Duration

	mu       sync.Mutex
	closed   bool
	done     chan struct{}
	watchers []*fsnotify.Watcher
}

// New creates a connector for rootPath.
func New(rootPath string, opts ...Option) *Connector {
	c := &Connector{
		rootPath: rootPath,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RootPath returns the directory the connector was created for.
func (c *Connector) RootPath() string {
	return c.rootPath
}

// Walk returns the absolute paths of every visible regular file, sorted.
func (c *Connector) Walk(ctx context.Context) ([]string, error) {
	root, err := c.root()
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	slices.Sort(files)
	return files, nil
}

// Watch reports file changes under the root until ctx is cancelled or the
// connector is closed, then closes the channel. Events for one path within
// the debounce window are coalesced into a single change.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.FileChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}

	root, err := c.root()
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(watcher, root); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	c.watchers = append(c.watchers, watcher)

	out := make(chan domain.FileChange)
	go c.run(ctx, watcher, out)

	logger.Debug("Watching %s", root)
	return out, nil
}

// Close stops every watch. It is safe to call more than once.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
	}
	for _, w := range c.watchers {
		_ = w.Close()
	}
	c.watchers = nil
	return nil
}

// root resolves the root path and checks that it is a directory.
func (c *Connector) root() (string, error) {
	abs, err := filepath.Abs(c.rootPath)
	if err != nil {
		return "", fmt.Errorf("root path error: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root path error: %s is not a directory", abs)
	}
	return abs, nil
}

func (c *Connector) run(ctx context.Context, w *fsnotify.Watcher, out chan<- domain.FileChange) {
	defer close(out)
	defer w.Close()

	pending := make(map[string]domain.ChangeType)
	timer := time.NewTimer(c.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-c.done:
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			handleEvent(w, event, pending)
			if len(pending) > 0 {
				timer.Reset(c.debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)

		case <-timer.C:
			if !flush(ctx, c.done, pending, out) {
				return
			}
		}
	}
}

// handleEvent records the change an event implies for its path.
func handleEvent(w *fsnotify.Watcher, event fsnotify.Event, pending map[string]domain.ChangeType) {
	if isHidden(filepath.Base(event.Name)) {
		return
	}

	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			watchNewDir(w, event.Name, pending)
			return
		}
		if info.Mode().IsRegular() {
			merge(pending, event.Name, domain.ChangeCreated)
		}
	case event.Has(fsnotify.Write):
		merge(pending, event.Name, domain.ChangeUpdated)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		merge(pending, event.Name, domain.ChangeDeleted)
	}
}

// watchNewDir watches a directory created under the root and reports the
// files that appeared in it before the watch was added.
func watchNewDir(w *fsnotify.Watcher, dir string, pending map[string]domain.ChangeType) {
	if err := addTree(w, dir); err != nil {
		logger.Warn("watch %s: %v", dir, err)
		return
	}
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Best effort; the directory may already be gone.
		}
		if path != dir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			merge(pending, path, domain.ChangeCreated)
		}
		return nil
	})
}

// merge folds a new change into the pending change for path.
// Created then deleted cancels out; deleted then created is an update, which
// is how editors that save by rename appear.
func merge(pending map[string]domain.ChangeType, path string, change domain.ChangeType) {
	prev, ok := pending[path]
	switch {
	case !ok:
		pending[path] = change
	case change == domain.ChangeDeleted && prev == domain.ChangeCreated:
		delete(pending, path)
	case change == domain.ChangeDeleted:
		pending[path] = domain.ChangeDeleted
	case prev == domain.ChangeDeleted:
		pending[path] = domain.ChangeUpdated
	}
}

// flush emits pending changes in path order and clears them.
// It returns false if ctx was cancelled or done closed first.
func flush(
	ctx context.Context,
	done <-chan struct{},
	pending map[string]domain.ChangeType,
	out chan<- domain.FileChange,
) bool {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	for _, path := range paths {
		select {
		case out <- domain.FileChange{Type: pending[path], Path: path}:
		case <-ctx.Done():
			return false
		case <-done:
			return false
		}
		delete(pending, path)
	}
	return true
}

// addTree watches root and every visible directory below it.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
