package cache

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"

	"cix/internal/config"
)

func TestPutGet(t *testing.T) {
	c := New("test", 10, time.Minute)

	c.Put("key", []byte("value"))
	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get() should hit after Put()")
	}
	if !bytes.Equal(got, []byte("value")) {
		t.Errorf("Get() = %q, want %q", got, "value")
	}
}

func TestGetMiss(t *testing.T) {
	c := New("test", 10, time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("Get() on absent key should miss")
	}

	stats := c.GetStats()
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestInvalidate(t *testing.T) {
	c := New("test", 10, time.Minute)

	c.Put("key", []byte("value"))
	c.Invalidate("key")
	if _, ok := c.Get("key"); ok {
		t.Error("Get() after Invalidate() should miss")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New("test", 10, time.Minute)

	c.PutTTL("key", []byte("value"), 20*time.Millisecond)
	if _, ok := c.Get("key"); !ok {
		t.Fatal("entry should be live before TTL expiry")
	}

	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("expired entry should count as a miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be evicted on access, Len() = %d", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := New("test", 2, time.Minute)

	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))

	// Touch "a" so "b" becomes least recently used
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be present")
	}

	c.Put("c", []byte("3"))

	if _, ok := c.Get("b"); ok {
		t.Error("least-recently-used key should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently-used key should survive eviction")
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if ev := c.GetStats().Evictions; ev != 1 {
		t.Errorf("Evictions = %d, want 1", ev)
	}
}

func TestStatsHitRate(t *testing.T) {
	c := New("test", 10, time.Minute)

	c.Put("key", []byte("value"))
	c.Get("key")
	c.Get("key")
	c.Get("absent")

	stats := c.GetStats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", stats.Hits, stats.Misses)
	}
	want := 2.0 / 3.0
	if stats.HitRate < want-0.001 || stats.HitRate > want+0.001 {
		t.Errorf("HitRate = %f, want %f", stats.HitRate, want)
	}
}

func TestLargeValueRoundTrip(t *testing.T) {
	c := New("test", 10, time.Minute)

	// Compressible payload well above the compression threshold
	large := bytes.Repeat([]byte("func handleRequest() {}\n"), 1024)
	c.Put("big", large)

	got, ok := c.Get("big")
	if !ok {
		t.Fatal("large value should be retrievable")
	}
	if !bytes.Equal(got, large) {
		t.Error("large value should round-trip unchanged through compression")
	}

	if stats := c.GetStats(); stats.SizeBytes >= int64(len(large)) {
		t.Errorf("compressed size %d should be below raw size %d", stats.SizeBytes, len(large))
	}
}

func TestClearResetsEntriesNotCounters(t *testing.T) {
	c := New("test", 10, time.Minute)

	c.Put("key", []byte("value"))
	c.Get("key")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear(), want 0", c.Len())
	}
	if c.GetStats().Hits != 1 {
		t.Error("Clear() should keep hit counters")
	}
}

func TestOverwriteExistingKey(t *testing.T) {
	c := New("test", 10, time.Minute)

	c.Put("key", []byte("old"))
	c.Put("key", []byte("new"))

	got, _ := c.Get("key")
	if !bytes.Equal(got, []byte("new")) {
		t.Errorf("Get() = %q, want %q", got, "new")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New("test", 100, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("key-%d", j%50)
				c.Put(key, []byte(fmt.Sprintf("value-%d-%d", n, j)))
				c.Get(key)
				if j%10 == 0 {
					c.Invalidate(key)
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d, capacity 100 exceeded", c.Len())
	}
}

func newTestManager() *Manager {
	return NewManager(config.CachesConfig{
		Files:   config.CacheConfig{TTLSeconds: 60, MaxEntries: 10},
		Symbols: config.CacheConfig{TTLSeconds: 60, MaxEntries: 10},
		Git:     config.CacheConfig{TTLSeconds: 120, MaxEntries: 10},
	})
}

func TestManagerNamedCaches(t *testing.T) {
	m := newTestManager()

	for _, name := range []string{FilesCache, SymbolsCache, GitCache} {
		if m.Get(name) == nil {
			t.Errorf("Get(%q) returned nil", name)
		}
	}
	if m.Get("unknown") != nil {
		t.Error("Get(unknown) should return nil")
	}
}

func TestManagerClearIsolation(t *testing.T) {
	m := newTestManager()

	m.Get(FilesCache).Put("f", []byte("1"))
	m.Get(GitCache).Put("g", []byte("2"))

	m.Get(FilesCache).Clear()

	if _, ok := m.Get(FilesCache).Get("f"); ok {
		t.Error("files cache should be empty after its Clear()")
	}
	if _, ok := m.Get(GitCache).Get("g"); !ok {
		t.Error("clearing one cache must not affect the others")
	}
}

func TestManagerClearAll(t *testing.T) {
	m := newTestManager()

	m.Get(FilesCache).Put("f", []byte("1"))
	m.Get(SymbolsCache).Put("s", []byte("2"))
	m.Get(GitCache).Put("g", []byte("3"))

	m.ClearAll()

	for _, name := range []string{FilesCache, SymbolsCache, GitCache} {
		if m.Get(name).Len() != 0 {
			t.Errorf("cache %q should be empty after ClearAll()", name)
		}
	}
}

func TestManagerGitTTL(t *testing.T) {
	m := newTestManager()
	if m.GitTTL() != 120*time.Second {
		t.Errorf("GitTTL() = %v, want 120s", m.GitTTL())
	}
}
