package query

import (
	"context"
	"encoding/json"
	"fmt"

	"cix/internal/cache"
	"cix/internal/gitquery"
)

// Git results change only when the repository does, so they are served
// from the git cache keyed by operation and arguments. A stale hit ages
// out via the cache TTL rather than explicit invalidation.

// FileHistory returns the commits that touched path.
func (e *Engine) FileHistory(ctx context.Context, path string, limit int) ([]gitquery.Commit, error) {
	key := fmt.Sprintf("history|%s|%d", path, limit)

	var commits []gitquery.Commit
	if e.gitCached(key, &commits) {
		return commits, nil
	}

	commits, err := e.git.FileHistory(ctx, path, limit)
	if err != nil {
		return nil, err
	}
	e.gitStore(key, commits)
	return commits, nil
}

// RecentCommits returns the repository's latest commits.
func (e *Engine) RecentCommits(ctx context.Context, limit int) ([]gitquery.Commit, error) {
	key := fmt.Sprintf("recent|%d", limit)

	var commits []gitquery.Commit
	if e.gitCached(key, &commits) {
		return commits, nil
	}

	commits, err := e.git.RecentCommits(ctx, limit)
	if err != nil {
		return nil, err
	}
	e.gitStore(key, commits)
	return commits, nil
}

// Blame attributes each line of path.
func (e *Engine) Blame(ctx context.Context, path string) ([]gitquery.BlameLine, error) {
	key := "blame|" + path

	var lines []gitquery.BlameLine
	if e.gitCached(key, &lines) {
		return lines, nil
	}

	lines, err := e.git.Blame(ctx, path)
	if err != nil {
		return nil, err
	}
	e.gitStore(key, lines)
	return lines, nil
}

// DiffStats returns per-file churn between two revisions.
func (e *Engine) DiffStats(ctx context.Context, from, to string) ([]gitquery.DiffStat, error) {
	key := fmt.Sprintf("diff|%s|%s", from, to)

	var stats []gitquery.DiffStat
	if e.gitCached(key, &stats) {
		return stats, nil
	}

	stats, err := e.git.DiffStats(ctx, from, to)
	if err != nil {
		return nil, err
	}
	e.gitStore(key, stats)
	return stats, nil
}

// gitCached loads key into out, reporting whether a decodable hit existed.
func (e *Engine) gitCached(key string, out interface{}) bool {
	c := e.caches.Get(cache.GitCache)
	if c == nil {
		return false
	}
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.Invalidate(key)
		return false
	}
	return true
}

func (e *Engine) gitStore(key string, value interface{}) {
	c := e.caches.Get(cache.GitCache)
	if c == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		c.Put(key, data)
	}
}
