package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"cix/internal/gitquery"
	"cix/internal/index"
	"cix/internal/query"
	"cix/internal/watcher"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *query.SearchResponse:
		return formatSearchHuman(v), nil
	case *query.ReferencesResponse:
		return formatRefsHuman(v), nil
	case *index.IndexResult:
		return formatIndexResultHuman(v), nil
	case *statusResponse:
		return formatStatusHuman(v), nil
	case []watcher.ChangeRecord:
		return formatChangesHuman(v), nil
	case []gitquery.Commit:
		return formatCommitsHuman(v), nil
	case []gitquery.BlameLine:
		return formatBlameHuman(v), nil
	case []gitquery.DiffStat:
		return formatDiffHuman(v), nil
	default:
		// Unknown types fall back to JSON
		return formatJSON(resp)
	}
}

func formatSearchHuman(resp *query.SearchResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d symbol(s) for %q in %dms\n",
		resp.TotalFound, resp.Query, resp.SearchTimeMs)
	if resp.Truncated {
		b.WriteString("(results truncated)\n")
	}
	for _, r := range resp.Results {
		fmt.Fprintf(&b, "  %-10s %-30s %s:%d\n",
			r.Symbol.Kind, r.Symbol.Name, r.Symbol.FilePath, r.Symbol.Line)
		if r.Symbol.Signature != "" {
			fmt.Fprintf(&b, "             %s\n", r.Symbol.Signature)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRefsHuman(resp *query.ReferencesResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d reference(s) to %q in %dms\n",
		resp.TotalFound, resp.Symbol, resp.SearchTimeMs)
	if resp.Truncated {
		b.WriteString("(results truncated)\n")
	}
	for _, r := range resp.References {
		fmt.Fprintf(&b, "  [%s] %s:%d  %s\n", r.Kind, r.FilePath, r.Line, r.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatIndexResultHuman(r *index.IndexResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Indexed %d file(s), %d symbol(s) in %dms\n",
		r.FilesIndexed, r.SymbolsFound, r.ElapsedMs)
	fmt.Fprintf(&b, "  skipped: %d, failed: %d\n", r.FilesSkipped, r.FilesFailed)
	if r.Truncated {
		b.WriteString("  (run was interrupted)\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatStatusHuman(s *statusResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "cix %s\n", s.Version)
	if s.Project.Name != "" {
		fmt.Fprintf(&b, "Project: %s\n", s.Project.Name)
	}
	if len(s.Project.Languages) > 0 {
		fmt.Fprintf(&b, "Languages: %s\n", strings.Join(s.Project.Languages, ", "))
	}
	fmt.Fprintf(&b, "Files indexed: %d\n", s.Stats.Index.FilesIndexed)
	fmt.Fprintf(&b, "Symbols: %d\n", s.Stats.Index.SymbolsFound)
	fmt.Fprintf(&b, "Monitoring: %v\n", s.Stats.Monitoring)
	fmt.Fprintf(&b, "Git: %v\n", s.Stats.GitPresent)

	for name, cs := range s.Stats.Caches {
		fmt.Fprintf(&b, "Cache %-8s entries=%d hitRate=%.2f evictions=%d\n",
			name, cs.Entries, cs.HitRate, cs.Evictions)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatChangesHuman(records []watcher.ChangeRecord) string {
	if len(records) == 0 {
		return "No recent changes"
	}

	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%s  %-8s %s\n",
			rec.Timestamp.Format("15:04:05"), rec.Type, rec.Path)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCommitsHuman(commits []gitquery.Commit) string {
	if len(commits) == 0 {
		return "No commits"
	}

	var b strings.Builder
	for _, c := range commits {
		hash := c.Hash
		if len(hash) > 8 {
			hash = hash[:8]
		}
		fmt.Fprintf(&b, "%s  %s  %-20s %s\n",
			hash, c.Date.Format("2006-01-02"), c.Author, c.Subject)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatBlameHuman(lines []gitquery.BlameLine) string {
	var b strings.Builder
	for _, l := range lines {
		hash := l.Hash
		if len(hash) > 8 {
			hash = hash[:8]
		}
		fmt.Fprintf(&b, "%4d  %s  %s\n", l.Line, hash, l.Author)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatDiffHuman(stats []gitquery.DiffStat) string {
	if len(stats) == 0 {
		return "No changes"
	}

	var b strings.Builder
	for _, s := range stats {
		fmt.Fprintf(&b, "+%-5d -%-5d %s\n", s.Additions, s.Deletions, s.Path)
	}
	return strings.TrimRight(b.String(), "\n")
}
