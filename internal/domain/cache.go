package domain

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	m "github.com/mouse-blink/turretlint/internal/model"
)

// DefaultCacheSize bounds the number of cached analyses.
const DefaultCacheSize = 256

type cachedAnalyzer struct {
	inner Analyzer
	cache *lru.Cache[string, m.Analysis]
}

// NewCachedAnalyzer wraps inner with an LRU keyed by the SHA-256 of the text.
// Cached results are shared; callers must treat them as read-only.
func NewCachedAnalyzer(inner Analyzer, size int) (Analyzer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[string, m.Analysis](size)
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}

	return &cachedAnalyzer{inner: inner, cache: cache}, nil
}

func (c *cachedAnalyzer) Analyze(text string) m.Analysis {
	key := HashText(text)
	if a, ok := c.cache.Get(key); ok {
		return a
	}

	a := c.inner.Analyze(text)
	c.cache.Add(key, a)

	return a
}

// HashText returns the hex SHA-256 of a program text.
func HashText(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}
