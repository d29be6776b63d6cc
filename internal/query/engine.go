// Package query is the caller-facing surface. An Engine wires the symbol
// index, change watcher, git adapter and caches together behind one API;
// embedding programs construct an Engine and call its methods directly.
package query

import (
	"context"
	"time"

	"cix/internal/cache"
	"cix/internal/config"
	"cix/internal/errors"
	"cix/internal/extract"
	"cix/internal/gitquery"
	"cix/internal/index"
	"cix/internal/logging"
	"cix/internal/watcher"
)

// Engine coordinates all subsystems for one source tree.
type Engine struct {
	cfg     *config.Config
	logger  *logging.Logger
	caches  *cache.Manager
	index   *index.Index
	watcher *watcher.Watcher
	git     *gitquery.Adapter
}

// NewEngine builds an engine for cfg.RootPath. Nothing is indexed yet;
// callers run IndexDirectory (or StartMonitoring) to populate it.
func NewEngine(cfg *config.Config, logger *logging.Logger) *Engine {
	caches := cache.NewManager(cfg.Caches)

	extractor := extract.NewCachingExtractor(
		caches.Get(cache.SymbolsCache),
		logger.WithComponent("extract"),
	)

	ix := index.New(cfg.RootPath, cfg.Index, extractor,
		caches.Get(cache.FilesCache), logger.WithComponent("index"))

	w := watcher.New(cfg.RootPath, cfg.Watcher, cfg.Index, ix, logger.WithComponent("watcher"))

	git := gitquery.NewAdapter(cfg.RootPath, cfg.GitTimeout(), logger.WithComponent("git"))

	return &Engine{
		cfg:     cfg,
		logger:  logger,
		caches:  caches,
		index:   ix,
		watcher: w,
		git:     git,
	}
}

// SearchResponse wraps search hits with timing.
type SearchResponse struct {
	Query        string               `json:"query"`
	Results      []index.SearchResult `json:"results"`
	TotalFound   int                  `json:"totalFound"`
	SearchTimeMs int64                `json:"searchTimeMs"`
	Truncated    bool                 `json:"truncated"`
}

// SearchSymbols finds symbols by name across the indexed tree. fuzzy
// enables the subsequence fallback when no exact match exists.
func (e *Engine) SearchSymbols(ctx context.Context, query string, kind extract.SymbolKind, limit int, fuzzy bool) (*SearchResponse, error) {
	start := time.Now()

	outcome, err := e.index.SearchSymbols(ctx, query, kind, limit, fuzzy)
	if err != nil {
		return nil, err
	}

	return &SearchResponse{
		Query:        query,
		Results:      outcome.Results,
		TotalFound:   outcome.TotalFound,
		SearchTimeMs: time.Since(start).Milliseconds(),
		Truncated:    outcome.Truncated,
	}, nil
}

// ReferencesResponse wraps reference hits with timing.
type ReferencesResponse struct {
	Symbol       string            `json:"symbol"`
	References   []index.Reference `json:"references"`
	TotalFound   int               `json:"totalFound"`
	SearchTimeMs int64             `json:"searchTimeMs"`
	Truncated    bool              `json:"truncated"`
}

// FindReferences locates use sites of a symbol across the indexed tree.
// A negative contextLines uses the configured default.
func (e *Engine) FindReferences(ctx context.Context, name string, contextLines, limit int) (*ReferencesResponse, error) {
	start := time.Now()

	outcome, err := e.index.FindReferences(ctx, name, contextLines, limit)
	if err != nil {
		return nil, err
	}

	return &ReferencesResponse{
		Symbol:       name,
		References:   outcome.References,
		TotalFound:   outcome.TotalFound,
		SearchTimeMs: time.Since(start).Milliseconds(),
		Truncated:    outcome.Truncated,
	}, nil
}

// IndexDirectory indexes dir, defaulting to the configured root.
func (e *Engine) IndexDirectory(ctx context.Context, dir string, recursive bool) (*index.IndexResult, error) {
	if dir == "" {
		dir = e.cfg.RootPath
	}
	return e.index.IndexDirectory(ctx, dir, recursive)
}

// IndexFile indexes a single file.
func (e *Engine) IndexFile(path string) (int, error) {
	return e.index.IndexFile(path)
}

// EngineStats combines index, cache and watcher state.
type EngineStats struct {
	Index      index.Statistics       `json:"index"`
	Caches     map[string]cache.Stats `json:"caches"`
	Monitoring bool                   `json:"monitoring"`
	GitPresent bool                   `json:"gitPresent"`
}

// Statistics reports the engine's current state.
func (e *Engine) Statistics(ctx context.Context) EngineStats {
	return EngineStats{
		Index:      e.index.Stats(),
		Caches:     e.caches.StatsAll(),
		Monitoring: e.watcher.Running(),
		GitPresent: e.git.Available(ctx),
	}
}

// StartMonitoring begins watching the tree for changes.
func (e *Engine) StartMonitoring() error {
	if !e.cfg.Watcher.Enabled {
		return errors.New(errors.InvalidArgument, "watcher is disabled in configuration", nil)
	}
	return e.watcher.Start()
}

// StopMonitoring halts change watching. Recorded history survives.
func (e *Engine) StopMonitoring() {
	e.watcher.Stop()
}

// RecentChanges returns debounced changes from the last given number of
// hours, newest first.
func (e *Engine) RecentChanges(hours int) ([]watcher.ChangeRecord, error) {
	if hours <= 0 {
		return nil, errors.New(errors.InvalidArgument, "hours must be positive", nil)
	}
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	return e.watcher.RecentChanges(cutoff), nil
}

// ClearIndex drops all indexed entries. Change history and caches are
// untouched.
func (e *Engine) ClearIndex() {
	e.index.Clear()
	e.logger.Info("Index cleared", nil)
}

// ClearCaches empties every named cache. The index itself is untouched.
func (e *Engine) ClearCaches() {
	e.caches.ClearAll()
	e.logger.Info("Caches cleared", nil)
}

// Index exposes the underlying symbol index for export.
func (e *Engine) Index() *index.Index {
	return e.index
}
