package query

import (
	"testing"

	"cix/internal/gitquery"
)

func TestGitCacheRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)

	commits := []gitquery.Commit{{Hash: "abc", Author: "Alice", Subject: "initial"}}
	e.gitStore("recent|5", commits)

	var got []gitquery.Commit
	if !e.gitCached("recent|5", &got) {
		t.Fatal("stored entry should be a hit")
	}
	if len(got) != 1 || got[0].Hash != "abc" {
		t.Errorf("got %+v", got)
	}

	if e.gitCached("recent|99", &got) {
		t.Error("unknown key should miss")
	}
}

func TestGitCacheClearedWithCaches(t *testing.T) {
	e, _ := newTestEngine(t)

	e.gitStore("blame|a.go", []gitquery.BlameLine{{Line: 1, Author: "Bob"}})
	e.ClearCaches()

	var got []gitquery.BlameLine
	if e.gitCached("blame|a.go", &got) {
		t.Error("ClearCaches should empty the git cache")
	}
}
