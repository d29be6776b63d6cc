package extract

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"golang.org/x/crypto/blake2b"

	"cix/internal/cache"
	"cix/internal/logging"
)

// ContentHash fingerprints file bytes. Matching hashes let the index skip
// redundant re-extraction.
func ContentHash(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CachingExtractor memoizes Extract results by content hash. The cache is
// advisory: encode/decode failures fall back to plain extraction.
type CachingExtractor struct {
	cache  *cache.Cache
	logger *logging.Logger

	extractions atomic.Uint64
}

// NewCachingExtractor wraps extraction with a symbol cache. A nil cache
// disables memoization.
func NewCachingExtractor(c *cache.Cache, logger *logging.Logger) *CachingExtractor {
	return &CachingExtractor{
		cache:  c,
		logger: logger,
	}
}

// Extract returns the symbols for (path, content, lang), serving repeated
// calls for unchanged content from the cache.
func (e *CachingExtractor) Extract(path string, content []byte, lang Language) []Symbol {
	if e.cache == nil {
		e.extractions.Add(1)
		return Extract(path, string(content), lang)
	}

	key := fmt.Sprintf("%s|%s|%s", lang, path, ContentHash(content))

	if data, ok := e.cache.Get(key); ok {
		var symbols []Symbol
		if err := json.Unmarshal(data, &symbols); err == nil {
			return symbols
		}
		// Undecodable entry: treat as a miss
		e.cache.Invalidate(key)
	}

	e.extractions.Add(1)
	symbols := Extract(path, string(content), lang)

	if data, err := json.Marshal(symbols); err == nil {
		e.cache.Put(key, data)
	} else {
		e.logger.Warn("Failed to cache extraction result", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	return symbols
}

// Extractions returns how many times real extraction ran (as opposed to a
// cache hit). Used by tests to verify incremental no-ops.
func (e *CachingExtractor) Extractions() uint64 {
	return e.extractions.Load()
}
