// Package watcher turns raw filesystem events into debounced change
// records and keeps the symbol index current. Events for ineligible paths
// are dropped before debouncing, so excluded files never generate records
// or reindex work.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/semaphore"

	"cix/internal/config"
	"cix/internal/errors"
	"cix/internal/ignore"
	"cix/internal/logging"
)

// Reindexer receives debounced changes. The symbol index implements it.
type Reindexer interface {
	IndexFile(path string) (int, error)
	RemoveFile(path string) bool
}

// Watcher monitors a directory tree for file changes.
type Watcher struct {
	root     string
	cfg      config.WatcherConfig
	indexCfg config.IndexConfig
	target   Reindexer
	logger   *logging.Logger

	history   *History
	debouncer *Debouncer
	sem       *semaphore.Weighted

	mu      sync.Mutex
	fw      *fsnotify.Watcher
	done    chan struct{}
	running bool
}

// New creates a watcher for root. Changes are filtered with the same
// exclusion rules the index applies.
func New(root string, cfg config.WatcherConfig, indexCfg config.IndexConfig, target Reindexer, logger *logging.Logger) *Watcher {
	workers := cfg.MaxWorkers
	if workers < 1 {
		workers = 1
	}

	w := &Watcher{
		root:     filepath.Clean(root),
		cfg:      cfg,
		indexCfg: indexCfg,
		target:   target,
		logger:   logger,
		history:  NewHistory(cfg.HistorySize),
		sem:      semaphore.NewWeighted(int64(workers)),
	}
	w.debouncer = NewDebouncer(
		time.Duration(cfg.DebounceMs)*time.Millisecond,
		w.dispatch,
	)
	return w
}

// Start begins monitoring. It watches root and every eligible
// subdirectory, then processes events until Stop is called.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New(errors.InternalError, "cannot create filesystem watcher", err)
	}

	if err := w.addRecursive(fw, w.root); err != nil {
		fw.Close()
		return errors.New(errors.FileUnreadable, "cannot watch directory tree", err).
			WithDetails(map[string]interface{}{"path": w.root})
	}

	// A stopped Debouncer drops every Observe, so each monitoring session
	// gets a fresh one; stop/start cycles resume tracking.
	w.debouncer = NewDebouncer(
		time.Duration(w.cfg.DebounceMs)*time.Millisecond,
		w.dispatch,
	)

	w.fw = fw
	w.done = make(chan struct{})
	w.running = true

	go w.run(fw, w.done, w.debouncer)

	w.logger.Info("Watcher started", map[string]interface{}{
		"root":       w.root,
		"debounceMs": w.cfg.DebounceMs,
	})
	return nil
}

// Stop halts monitoring and cancels pending debounce timers. The change
// history survives so recent changes remain queryable.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false

	close(w.done)
	w.fw.Close()
	w.fw = nil
	w.debouncer.Stop()

	w.logger.Info("Watcher stopped", map[string]interface{}{"root": w.root})
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// RecentChanges returns debounced changes recorded at or after cutoff,
// newest first. Works whether or not the watcher is running.
func (w *Watcher) RecentChanges(cutoff time.Time) []ChangeRecord {
	return w.history.Since(cutoff)
}

// run is the event loop. A panic in event handling is contained and the
// loop resumes rather than killing the watcher. The debouncer is passed
// in so a loop from an earlier session never feeds the current one.
func (w *Watcher) run(fw *fsnotify.Watcher, done chan struct{}, deb *Debouncer) {
	for {
		recovered := func() (recovered bool) {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("Watcher event loop panic", map[string]interface{}{
						"panic": r,
					})
					recovered = true
				}
			}()

			for {
				select {
				case <-done:
					return false
				case event, ok := <-fw.Events:
					if !ok {
						return false
					}
					w.handleEvent(fw, deb, event)
				case err, ok := <-fw.Errors:
					if !ok {
						return false
					}
					w.logger.Warn("Watcher error", map[string]interface{}{
						"error": err.Error(),
					})
				}
			}
		}()
		if !recovered {
			return
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, deb *Debouncer, event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	// New directories must be added to the watch set before their
	// contents start changing.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.excludedDir(path) {
				if err := w.addRecursive(fw, path); err != nil {
					w.logger.Warn("Cannot watch new directory", map[string]interface{}{
						"path":  path,
						"error": err.Error(),
					})
				}
			}
			return
		}
	}

	if !w.eligible(path) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		deb.Observe(path, ChangeCreated)
	case event.Op.Has(fsnotify.Write):
		deb.Observe(path, ChangeModified)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		deb.Observe(path, ChangeDeleted)
	}
}

// dispatch runs after the debounce window closes: record the change, then
// update the index on a bounded worker.
func (w *Watcher) dispatch(path string, changeType ChangeType) {
	rec := w.history.Record(path, changeType)

	w.logger.Debug("Change recorded", map[string]interface{}{
		"id":   rec.ID,
		"path": path,
		"type": string(changeType),
	})

	if err := w.sem.Acquire(context.Background(), 1); err != nil {
		return
	}
	go func() {
		defer w.sem.Release(1)

		if changeType == ChangeDeleted {
			w.target.RemoveFile(path)
			return
		}
		if _, err := w.target.IndexFile(path); err != nil && !errors.IsSkip(err) {
			w.logger.Warn("Reindex after change failed", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}()
}

// eligible applies the index's exclusion rules to an event path.
func (w *Watcher) eligible(path string) bool {
	rel := path
	if r, err := filepath.Rel(w.root, path); err == nil {
		rel = filepath.ToSlash(r)
	}
	if ignore.Matches(w.indexCfg.ExcludePatterns, rel) {
		return false
	}
	return ignore.AllowedExtension(w.indexCfg.Extensions, path)
}

func (w *Watcher) excludedDir(path string) bool {
	rel := path
	if r, err := filepath.Rel(w.root, path); err == nil {
		rel = filepath.ToSlash(r)
	}
	return ignore.Matches(w.indexCfg.ExcludePatterns, rel)
}

// addRecursive watches dir and its non-excluded subdirectories.
func (w *Watcher) addRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.excludedDir(path) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
