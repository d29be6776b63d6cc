package index

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cix/internal/errors"
	"cix/internal/ignore"
)

// IndexResult reports the outcome of a directory indexing run.
type IndexResult struct {
	RunID        string `json:"runId"`
	FilesIndexed int    `json:"filesIndexed"`
	FilesSkipped int    `json:"filesSkipped"`
	FilesFailed  int    `json:"filesFailed"`
	SymbolsFound int    `json:"symbolsFound"`
	ElapsedMs    int64  `json:"elapsedMs"`
	Truncated    bool   `json:"truncated"`
}

// IndexDirectory walks dir and indexes every eligible file, fanning out
// across a bounded worker pool. Per-file failures are counted, not fatal;
// only an unreadable root or a cancelled context aborts the run. A
// cancelled run returns partial results with Truncated set.
func (ix *Index) IndexDirectory(ctx context.Context, dir string, recursive bool) (*IndexResult, error) {
	start := time.Now()
	dir = filepath.Clean(dir)

	result := &IndexResult{RunID: uuid.New().String()}

	files, err := ix.collectFiles(ctx, dir, recursive)
	if err != nil {
		if ctx.Err() != nil {
			result.Truncated = true
			result.ElapsedMs = time.Since(start).Milliseconds()
			return result, nil
		}
		return nil, errors.New(errors.FileUnreadable, "cannot walk directory", err).
			WithDetails(map[string]interface{}{"path": dir})
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workerLimit())

	for _, path := range files {
		if gctx.Err() != nil {
			break
		}
		path := path
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			count, err := ix.IndexFile(path)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.FilesIndexed++
				result.SymbolsFound += count
			case errors.IsSkip(err):
				result.FilesSkipped++
			default:
				result.FilesFailed++
				ix.logger.Warn("Failed to index file", map[string]interface{}{
					"path":  ix.relPath(path),
					"error": err.Error(),
				})
			}
			return nil
		})
	}

	_ = g.Wait()

	if ctx.Err() != nil {
		result.Truncated = true
	}
	result.ElapsedMs = time.Since(start).Milliseconds()

	ix.logger.Info("Directory indexed", map[string]interface{}{
		"runId":   result.RunID,
		"path":    dir,
		"indexed": result.FilesIndexed,
		"skipped": result.FilesSkipped,
		"failed":  result.FilesFailed,
		"symbols": result.SymbolsFound,
		"ms":      result.ElapsedMs,
	})

	return result, nil
}

// collectFiles gathers candidate file paths, pruning excluded directories
// so their contents are never visited.
func (ix *Index) collectFiles(ctx context.Context, dir string, recursive bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			// Unreadable subtree: log and move on
			ix.logger.Debug("Skipping unreadable path", map[string]interface{}{
				"path":  ix.relPath(path),
				"error": err.Error(),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive {
				return filepath.SkipDir
			}
			if ignore.Matches(ix.cfg.ExcludePatterns, ix.relPath(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (ix *Index) workerLimit() int {
	if ix.cfg.Workers > 0 {
		return ix.cfg.Workers
	}
	return 1
}
