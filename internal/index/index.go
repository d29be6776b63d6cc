// Package index maintains the in-memory symbol index: per-file extraction
// results keyed by path, with content hashes to detect staleness.
//
// The index is a rebuildable cache. Updates are file-granular: an entry is
// built fully off to the side and swapped in under the write lock, so
// readers never observe a half-written entry and re-indexing one file
// never blocks queries for another.
package index

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"cix/internal/cache"
	"cix/internal/config"
	"cix/internal/errors"
	"cix/internal/extract"
	"cix/internal/ignore"
	"cix/internal/logging"
)

// binarySniffLen is how many leading bytes are checked for NUL when
// deciding whether a file is binary.
const binarySniffLen = 8000

// FileEntry is the per-file cache state. Entries are immutable once
// published; re-indexing replaces the whole entry.
type FileEntry struct {
	Path        string
	Hash        string
	LastIndexed time.Time
	SizeBytes   int64
	Symbols     []extract.Symbol
	Lines       []string
}

// Statistics summarizes the current index contents.
type Statistics struct {
	FilesIndexed    int       `json:"filesIndexed"`
	SymbolsFound    int       `json:"symbolsFound"`
	ReferencesFound uint64    `json:"referencesFound"`
	MemoryEstimate  int64     `json:"memoryEstimate"`
	LastIndexedAt   time.Time `json:"lastIndexedAt"`
}

// Index owns the FileEntry map. All mutation goes through IndexFile,
// RemoveFile and Clear; no other component touches entries directly.
type Index struct {
	root      string
	cfg       config.IndexConfig
	extractor *extract.CachingExtractor
	files     *cache.Cache
	logger    *logging.Logger

	mu      sync.RWMutex
	entries map[string]*FileEntry

	referencesFound atomic.Uint64
	lastIndexed     atomic.Int64 // unix nanos
}

// New creates an empty index rooted at root. files may be nil to disable
// content read caching.
func New(root string, cfg config.IndexConfig, extractor *extract.CachingExtractor, files *cache.Cache, logger *logging.Logger) *Index {
	return &Index{
		root:      filepath.Clean(root),
		cfg:       cfg,
		extractor: extractor,
		files:     files,
		logger:    logger,
		entries:   make(map[string]*FileEntry),
	}
}

// Root returns the index root directory.
func (ix *Index) Root() string {
	return ix.root
}

// IndexFile indexes a single file and returns the number of symbols in its
// entry. When the on-disk content hash matches the stored entry the call
// is a no-op returning the cached count.
func (ix *Index) IndexFile(path string) (int, error) {
	path = filepath.Clean(path)

	rel := ix.relPath(path)
	if ignore.Matches(ix.cfg.ExcludePatterns, rel) {
		return 0, errors.New(errors.FileExcluded, "path matches exclusion pattern", nil).
			WithDetails(map[string]interface{}{"path": rel})
	}
	if !ignore.AllowedExtension(ix.cfg.Extensions, path) {
		return 0, errors.New(errors.FileExcluded, "extension not in allow-list", nil).
			WithDetails(map[string]interface{}{"path": rel})
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.New(errors.FileUnreadable, "cannot stat file", err)
	}
	if info.Size() > ix.cfg.MaxFileSizeBytes {
		return 0, errors.New(errors.FileTooLarge,
			fmt.Sprintf("file exceeds %d byte limit", ix.cfg.MaxFileSizeBytes), nil).
			WithDetails(map[string]interface{}{"path": rel, "size": info.Size()})
	}

	data, err := ix.readFile(path, info)
	if err != nil {
		return 0, errors.New(errors.FileUnreadable, "cannot read file", err)
	}
	if isBinary(data) {
		return 0, errors.New(errors.FileExcluded, "binary file", nil).
			WithDetails(map[string]interface{}{"path": rel})
	}

	hash := extract.ContentHash(data)

	ix.mu.RLock()
	if existing, ok := ix.entries[path]; ok && existing.Hash == hash {
		count := len(existing.Symbols)
		ix.mu.RUnlock()
		return count, nil
	}
	ix.mu.RUnlock()

	// Extraction happens outside any lock; the finished entry is swapped
	// in whole.
	lang := extract.DetectLanguage(path)
	symbols := ix.extractor.Extract(path, data, lang)

	entry := &FileEntry{
		Path:        path,
		Hash:        hash,
		LastIndexed: time.Now(),
		SizeBytes:   info.Size(),
		Symbols:     symbols,
		Lines:       splitLines(string(data)),
	}

	ix.mu.Lock()
	ix.entries[path] = entry
	ix.mu.Unlock()
	ix.lastIndexed.Store(entry.LastIndexed.UnixNano())

	ix.logger.Debug("Indexed file", map[string]interface{}{
		"path":    rel,
		"symbols": len(symbols),
	})

	return len(symbols), nil
}

// RemoveFile drops a file's entry, returning whether it existed.
func (ix *Index) RemoveFile(path string) bool {
	path = filepath.Clean(path)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.entries[path]; !ok {
		return false
	}
	delete(ix.entries, path)
	return true
}

// Clear drops all entries and resets statistics. The change tracker's
// history is untouched.
func (ix *Index) Clear() {
	ix.mu.Lock()
	ix.entries = make(map[string]*FileEntry)
	ix.mu.Unlock()

	ix.referencesFound.Store(0)
	ix.lastIndexed.Store(0)
}

// Stats returns a snapshot of index statistics.
func (ix *Index) Stats() Statistics {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	stats := Statistics{
		FilesIndexed:    len(ix.entries),
		ReferencesFound: ix.referencesFound.Load(),
	}

	for _, e := range ix.entries {
		stats.SymbolsFound += len(e.Symbols)
		// Raw content plus a rough per-symbol overhead
		stats.MemoryEstimate += e.SizeBytes + int64(len(e.Symbols))*128
	}

	if ns := ix.lastIndexed.Load(); ns > 0 {
		stats.LastIndexedAt = time.Unix(0, ns)
	}

	return stats
}

// HasFile reports whether path has an entry.
func (ix *Index) HasFile(path string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.entries[filepath.Clean(path)]
	return ok
}

// Snapshot returns the current entries sorted by path. Entries are
// immutable; callers may read them freely but must not mutate.
func (ix *Index) Snapshot() []*FileEntry {
	return ix.snapshot()
}

// snapshot returns the current entries sorted deterministically by path.
func (ix *Index) snapshot() []*FileEntry {
	ix.mu.RLock()
	entries := make([]*FileEntry, 0, len(ix.entries))
	for _, e := range ix.entries {
		entries = append(entries, e)
	}
	ix.mu.RUnlock()

	sortEntriesByPath(entries)
	return entries
}

// readFile returns path's content, serving repeat reads of an unchanged
// file from the files cache. The key carries mtime and size, so any
// modification forces a fresh read instead of a stale hit.
func (ix *Index) readFile(path string, info os.FileInfo) ([]byte, error) {
	if ix.files == nil {
		return os.ReadFile(path)
	}

	key := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
	if data, ok := ix.files.Get(key); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ix.files.Put(key, data)
	return data, nil
}

func (ix *Index) relPath(path string) string {
	if rel, err := filepath.Rel(ix.root, path); err == nil && !isDotDot(rel) {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func isDotDot(rel string) bool {
	return rel == ".." || len(rel) >= 3 && rel[:3] == "../"
}

func isBinary(data []byte) bool {
	n := len(data)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

func splitLines(content string) []string {
	lines := make([]string, 0, 64)
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			line := content[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	lines = append(lines, content[start:])
	return lines
}
