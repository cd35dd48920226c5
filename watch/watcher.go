// Package watch re-runs a callback when markdown files under a root
// directory change.
//
// Every non-excluded directory below the root is watched. Changes to
// markdown files are collected and delivered in one batch once the tree
// has been quiet for the debounce interval, so an editor saving several
// files, or a branch checkout, triggers a single re-check.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/mdtoken/matcher"
)

// DefaultDebounce is how long the tree must be quiet before a batch of
// changes is delivered.
const DefaultDebounce = 200 * time.Millisecond

// relevantOps are the events that can change a file's token count.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher watches the root of a matcher.
type Watcher struct {
	matcher  *matcher.Matcher
	debounce time.Duration
	ready    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before changes are delivered.
// Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for the root of m. Excluded directories are not
// watched.
func New(m *matcher.Matcher, opts ...Option) *Watcher {
	w := &Watcher{
		matcher:  m,
		debounce: DefaultDebounce,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once Run has installed its watches.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is done, calling onChange with the sorted paths
// of markdown files that changed. onChange runs on the watching
// goroutine; events that arrive meanwhile are batched for the next call.
// Run returns nil when ctx is cancelled. It may be called once.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if _, err := w.addTree(fsw, w.matcher.Root()); err != nil {
		return fmt.Errorf("watch %s: %w", w.matcher.Root(), err)
	}
	close(w.ready)
	slog.Debug("watching for changes", "root", w.matcher.Root(), "debounce", w.debounce)

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			changed := w.handle(fsw, event)
			if len(changed) == 0 {
				continue
			}
			for _, p := range changed {
				pending[p] = true
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)
			onChange(paths)

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}

// handle returns the markdown files affected by event. A new directory is
// watched, and the markdown files already inside it count as changed.
func (w *Watcher) handle(fsw *fsnotify.Watcher, event fsnotify.Event) []string {
	if !event.Has(relevantOps) {
		return nil
	}
	if w.matcher.Excluded(event.Name) {
		return nil
	}

	if event.Has(fsnotify.Create) && isDir(event.Name) {
		docs, err := w.addTree(fsw, event.Name)
		if err != nil {
			slog.Warn("could not watch new directory", "path", event.Name, "error", err)
		}
		return docs
	}

	if filepath.Ext(event.Name) != matcher.DocumentExt {
		return nil
	}
	slog.Debug("markdown file changed", "path", event.Name, "op", event.Op.String())
	return []string{event.Name}
}

// addTree watches dir and every non-excluded directory below it, and
// returns the markdown files found on the way.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			slog.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if path != w.matcher.Root() && w.matcher.Excluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				return fmt.Errorf("add %s: %w", path, err)
			}
			return nil
		}
		if filepath.Ext(path) == matcher.DocumentExt {
			docs = append(docs, path)
		}
		return nil
	})
	return docs, err
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
