package gitquery

import (
	"testing"
	"time"
)

func TestParseCommits(t *testing.T) {
	out := `abc123|Alice|2026-01-15T10:30:00+01:00|Add cache layer
def456|Bob|2026-01-14T09:00:00Z|Fix watcher race | with pipes in subject
`
	commits, err := parseCommits(out)
	if err != nil {
		t.Fatalf("parseCommits: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("got %d commits, want 2", len(commits))
	}

	first := commits[0]
	if first.Hash != "abc123" || first.Author != "Alice" {
		t.Errorf("first commit = %+v", first)
	}
	if first.Subject != "Add cache layer" {
		t.Errorf("Subject = %q", first.Subject)
	}
	if first.Date.Hour() != 10 {
		t.Errorf("Date = %v", first.Date)
	}

	if commits[1].Subject != "Fix watcher race | with pipes in subject" {
		t.Errorf("pipe in subject mangled: %q", commits[1].Subject)
	}
}

func TestParseCommitsEmpty(t *testing.T) {
	commits, err := parseCommits("")
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 0 {
		t.Errorf("empty output should yield no commits, got %d", len(commits))
	}
}

func TestParseCommitsBadDate(t *testing.T) {
	_, err := parseCommits("abc|Alice|not-a-date|subject\n")
	if err == nil {
		t.Error("malformed date should error")
	}
}

func TestParseCommitsSkipsShortLines(t *testing.T) {
	commits, err := parseCommits("garbage\nabc|Alice|2026-01-01T00:00:00Z|ok\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 1 {
		t.Errorf("got %d commits, want 1", len(commits))
	}
}

func TestParseBlame(t *testing.T) {
	hash := "1234567890123456789012345678901234567890"
	out := hash + ` 1 1 1
author Alice
author-mail <alice@example.com>
	package main
` + hash + ` 2 2 1
author Bob
	func main() {}
`
	lines, err := parseBlame(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	if lines[0].Line != 1 || lines[0].Author != "Alice" || lines[0].Hash != hash {
		t.Errorf("lines[0] = %+v", lines[0])
	}
	if lines[1].Line != 2 || lines[1].Author != "Bob" {
		t.Errorf("lines[1] = %+v", lines[1])
	}
}

func TestParseNumstat(t *testing.T) {
	out := "10\t3\tinternal/cache/cache.go\n-\t-\tassets/logo.png\n0\t5\tREADME.md\n"

	stats := parseNumstat(out)
	if len(stats) != 2 {
		t.Fatalf("got %d stats, want 2 (binary skipped)", len(stats))
	}
	if stats[0].Path != "internal/cache/cache.go" || stats[0].Additions != 10 || stats[0].Deletions != 3 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Deletions != 5 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}

func TestParseNumstatEmpty(t *testing.T) {
	if stats := parseNumstat(""); len(stats) != 0 {
		t.Errorf("empty output should yield no stats, got %d", len(stats))
	}
}

func TestCommitDateRoundTrip(t *testing.T) {
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	commits, err := parseCommits("h|a|" + want.Format(time.RFC3339) + "|s\n")
	if err != nil {
		t.Fatal(err)
	}
	if !commits[0].Date.Equal(want) {
		t.Errorf("Date = %v, want %v", commits[0].Date, want)
	}
}
