package gitquery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Commit is one entry from git log.
type Commit struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Subject string    `json:"subject"`
}

// BlameLine attributes one line of a file.
type BlameLine struct {
	Line   int    `json:"line"`
	Hash   string `json:"hash"`
	Author string `json:"author"`
}

// DiffStat summarizes churn for one file between two revisions.
type DiffStat struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// FileHistory returns the commits that touched path, newest first.
func (a *Adapter) FileHistory(ctx context.Context, path string, limit int) ([]Commit, error) {
	if limit <= 0 {
		limit = 20
	}
	out, err := a.run(ctx, "log", fmt.Sprintf("--max-count=%d", limit),
		"--format="+logFormat, "--follow", "--", path)
	if err != nil {
		return nil, err
	}
	return parseCommits(out)
}

// RecentCommits returns the repository's latest commits.
func (a *Adapter) RecentCommits(ctx context.Context, limit int) ([]Commit, error) {
	if limit <= 0 {
		limit = 20
	}
	out, err := a.run(ctx, "log", fmt.Sprintf("--max-count=%d", limit),
		"--format="+logFormat)
	if err != nil {
		return nil, err
	}
	return parseCommits(out)
}

// Blame attributes each line of path at HEAD.
func (a *Adapter) Blame(ctx context.Context, path string) ([]BlameLine, error) {
	out, err := a.run(ctx, "blame", "--line-porcelain", "HEAD", "--", path)
	if err != nil {
		return nil, err
	}
	return parseBlame(out)
}

// DiffStats returns per-file churn between two revisions.
func (a *Adapter) DiffStats(ctx context.Context, from, to string) ([]DiffStat, error) {
	out, err := a.run(ctx, "diff", "--numstat", from, to)
	if err != nil {
		return nil, err
	}
	return parseNumstat(out), nil
}

// parseCommits decodes pipe-delimited log output. Subjects may themselves
// contain pipes, so the split caps at four fields.
func parseCommits(out string) ([]Commit, error) {
	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 4)
		if len(parts) < 4 {
			continue
		}
		date, err := time.Parse(time.RFC3339, parts[2])
		if err != nil {
			return nil, fmt.Errorf("malformed commit date %q: %w", parts[2], err)
		}
		commits = append(commits, Commit{
			Hash:    parts[0],
			Author:  parts[1],
			Date:    date,
			Subject: parts[3],
		})
	}
	return commits, nil
}

// parseBlame decodes --line-porcelain output. Each line group starts with
// "<hash> <orig> <final>" and carries an "author " header.
func parseBlame(out string) ([]BlameLine, error) {
	var lines []BlameLine
	var current BlameLine

	for _, raw := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(raw, "author "):
			current.Author = strings.TrimPrefix(raw, "author ")
		case strings.HasPrefix(raw, "\t"):
			// Content line terminates the group
			lines = append(lines, current)
			current = BlameLine{}
		default:
			fields := strings.Fields(raw)
			if len(fields) >= 3 && len(fields[0]) == 40 {
				final, err := strconv.Atoi(fields[2])
				if err != nil {
					continue
				}
				current.Hash = fields[0]
				current.Line = final
			}
		}
	}
	return lines, nil
}

// parseNumstat decodes "added<TAB>deleted<TAB>path" lines. Binary files
// report "-" counts and are skipped.
func parseNumstat(out string) []DiffStat {
	var stats []DiffStat
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 3 {
			continue
		}
		add, err1 := strconv.Atoi(fields[0])
		del, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			continue
		}
		stats = append(stats, DiffStat{
			Path:      fields[2],
			Additions: add,
			Deletions: del,
		})
	}
	return stats
}
