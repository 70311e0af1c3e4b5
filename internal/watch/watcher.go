// Package watch rescrubs markdown files in a directory as they change.
package watch

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	serrors "git.home.luguber.info/inful/prscrub/internal/errors"
	"git.home.luguber.info/inful/prscrub/internal/logfields"
	"git.home.luguber.info/inful/prscrub/internal/scrub"
)

// Watcher monitors a directory and scrubs changed markdown files in place.
// Scrubbing is idempotent, so the write-back triggered by a scrub settles on
// the second event (the content no longer changes and no write happens).
type Watcher struct {
	dir      string
	scrubber *scrub.Scrubber
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a Watcher for the given directory.
func New(dir string, scrubber *scrub.Scrubber, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, serrors.Wrap(err, serrors.CategoryFileSystem, serrors.SeverityError, "failed to resolve watch directory")
	}
	info, err := os.Stat(absDir)
	if err != nil || !info.IsDir() {
		return nil, serrors.New(serrors.CategoryValidation, serrors.SeverityError, "watch path is not a directory").
			WithContext("path", dir)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, serrors.Wrap(err, serrors.CategoryRuntime, serrors.SeverityError, "failed to create file watcher")
	}
	if err := fsw.Add(absDir); err != nil {
		fsw.Close()
		return nil, serrors.Wrap(err, serrors.CategoryFileSystem, serrors.SeverityError, "failed to watch directory").
			WithContext("path", absDir)
	}

	return &Watcher{
		dir:      absDir,
		scrubber: scrubber,
		watcher:  fsw,
		logger:   logger,
		debounce: debounce,
		pending:  map[string]*time.Timer{},
	}, nil
}

// Run processes file events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("Watching for markdown changes", logfields.Path(w.dir))
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isMarkdownFile(event.Name) {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

// schedule queues a debounced scrub for the file. Editors often emit several
// events per save; only the last one within the window counts.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.scrubFile(path)
	})
}

func (w *Watcher) scrubFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		w.logger.Error("Failed to read file", logfields.File(path), logfields.Error(err))
		return
	}
	res, err := w.scrubber.Scrub(source)
	if err != nil {
		w.logger.Error("Failed to scrub file", logfields.File(path), logfields.Error(err))
		return
	}
	if bytes.Equal(res.Output, source) {
		return
	}
	if err := os.WriteFile(path, res.Output, 0o644); err != nil {
		w.logger.Error("Failed to write file", logfields.File(path), logfields.Error(err))
		return
	}
	w.logger.Info("Scrubbed file",
		logfields.File(path),
		logfields.MentionsLinked(res.MentionsLinked),
		logfields.ReferencesShort(res.ReferencesShortened))
}

func isMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}
