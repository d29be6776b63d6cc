// Package cache provides in-memory key/value caches with LRU eviction and
// per-entry TTL.
//
// Caches are advisory: any internal failure (including a failed
// decompression) degrades to a miss rather than an error. Values are byte
// slices; callers store JSON-encoded records, matching how query results
// are cached elsewhere in cix.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// compressThreshold is the value size above which entries are stored
// zstd-compressed.
const compressThreshold = 4096

var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Stats describes cache usage
type Stats struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	HitRate   float64 `json:"hitRate"`
	Entries   int     `json:"entries"`
	SizeBytes int64   `json:"sizeBytes"`
	Evictions uint64  `json:"evictions"`
}

// entry is a single cached value. expiresAt is zero for entries using the
// cache default TTL of zero (never expire).
type entry struct {
	key        string
	value      []byte
	compressed bool
	expiresAt  time.Time
	size       int64
}

// Cache is a single named LRU cache with lazy TTL expiry.
type Cache struct {
	name       string
	capacity   int
	defaultTTL time.Duration

	mu        sync.Mutex
	ll        *list.List // front = most recently used
	items     map[string]*list.Element
	hits      uint64
	misses    uint64
	evictions uint64
	sizeBytes int64
}

// New creates a cache with the given capacity and default TTL. A
// non-positive capacity means unbounded; a non-positive TTL means entries
// never expire unless PutTTL says otherwise.
func New(name string, capacity int, defaultTTL time.Duration) *Cache {
	return &Cache{
		name:       name,
		capacity:   capacity,
		defaultTTL: defaultTTL,
		ll:         list.New(),
		items:      make(map[string]*list.Element),
	}
}

// Name returns the cache's name.
func (c *Cache) Name() string {
	return c.name
}

// Get returns the value stored under key. A TTL-expired entry counts as a
// miss and is removed on access.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}

	ent := el.Value.(*entry)
	if !ent.expiresAt.IsZero() && time.Now().After(ent.expiresAt) {
		c.removeElement(el)
		c.misses++
		return nil, false
	}

	c.ll.MoveToFront(el)
	c.hits++

	if ent.compressed {
		decoded, err := zstdDecoder.DecodeAll(ent.value, nil)
		if err != nil {
			// Corrupt entry: drop it and degrade to a miss
			c.removeElement(el)
			c.hits--
			c.misses++
			return nil, false
		}
		return decoded, true
	}

	// Copy so callers cannot mutate the cached bytes
	out := make([]byte, len(ent.value))
	copy(out, ent.value)
	return out, true
}

// Put stores value under key with the cache's default TTL.
func (c *Cache) Put(key string, value []byte) {
	c.PutTTL(key, value, c.defaultTTL)
}

// PutTTL stores value under key with an explicit TTL. A non-positive TTL
// stores the entry without expiry.
func (c *Cache) PutTTL(key string, value []byte, ttl time.Duration) {
	stored := value
	compressed := false
	if len(value) > compressThreshold {
		stored = zstdEncoder.EncodeAll(value, nil)
		compressed = true
	} else {
		stored = make([]byte, len(value))
		copy(stored, value)
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	ent := &entry{
		key:        key,
		value:      stored,
		compressed: compressed,
		expiresAt:  expiresAt,
		size:       int64(len(stored)),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		old := el.Value.(*entry)
		c.sizeBytes += ent.size - old.size
		el.Value = ent
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(ent)
	c.items[key] = el
	c.sizeBytes += ent.size

	if c.capacity > 0 {
		for c.ll.Len() > c.capacity {
			oldest := c.ll.Back()
			if oldest == nil {
				break
			}
			c.removeElement(oldest)
			c.evictions++
		}
	}
}

// Invalidate removes a single key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// Clear drops every entry but keeps hit/miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	c.items = make(map[string]*list.Element)
	c.sizeBytes = 0
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// GetStats returns a snapshot of cache statistics.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   rate,
		Entries:   c.ll.Len(),
		SizeBytes: c.sizeBytes,
		Evictions: c.evictions,
	}
}

// removeElement removes an element; caller holds c.mu.
func (c *Cache) removeElement(el *list.Element) {
	ent := el.Value.(*entry)
	c.ll.Remove(el)
	delete(c.items, ent.key)
	c.sizeBytes -= ent.size
}
