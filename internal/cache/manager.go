package cache

import (
	"sync"
	"time"

	"cix/internal/config"
)

// Names of the cache instances cix maintains.
const (
	FilesCache   = "files"
	SymbolsCache = "symbols"
	GitCache     = "git"
)

// Manager owns the named cache instances. Each instance has independent
// TTL and capacity limits; clearing one never affects the others.
type Manager struct {
	mu     sync.RWMutex
	caches map[string]*Cache
	cfg    config.CachesConfig
}

// NewManager creates the named caches from configuration.
func NewManager(cfg config.CachesConfig) *Manager {
	m := &Manager{cfg: cfg}
	m.caches = m.build()
	return m
}

func (m *Manager) build() map[string]*Cache {
	return map[string]*Cache{
		FilesCache:   New(FilesCache, m.cfg.Files.MaxEntries, m.cfg.Files.TTL()),
		SymbolsCache: New(SymbolsCache, m.cfg.Symbols.MaxEntries, m.cfg.Symbols.TTL()),
		GitCache:     New(GitCache, m.cfg.Git.MaxEntries, m.cfg.Git.TTL()),
	}
}

// Get returns the named cache, or nil for an unknown name.
func (m *Manager) Get(name string) *Cache {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.caches[name]
}

// ClearAll replaces every named cache with a fresh one. Readers that
// already hold an old cache pointer may finish against it; readers
// arriving after the call see empty caches.
func (m *Manager) ClearAll() {
	fresh := m.build()

	m.mu.Lock()
	m.caches = fresh
	m.mu.Unlock()
}

// StatsAll returns statistics for every named cache.
func (m *Manager) StatsAll() map[string]Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]Stats, len(m.caches))
	for name, c := range m.caches {
		out[name] = c.GetStats()
	}
	return out
}

// GitTTL returns the configured git cache TTL.
func (m *Manager) GitTTL() time.Duration {
	return m.cfg.Git.TTL()
}
