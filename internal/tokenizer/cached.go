package tokenizer

import (
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/RishiKendai/winnow/internal/models"
)

type tokenization struct {
	tokens  []string
	mapping []models.Selection
}

// Cached memoizes the output of another tokenizer, keyed by language and
// content. Results are shared between callers and must be treated as
// read-only. Safe for concurrent use when the wrapped tokenizer is.
type Cached struct {
	next   Tokenizer
	cache  *lru.Cache[uint64, tokenization]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCached wraps next with an LRU cache of size entries.
func NewCached(next Tokenizer, size int) (*Cached, error) {
	cache, err := lru.New[uint64, tokenization](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

func (c *Cached) TokenizeWithMapping(file *models.File) ([]string, []models.Selection, error) {
	key := cacheKey(file)
	if hit, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return hit.tokens, hit.mapping, nil
	}
	c.misses.Add(1)

	tokens, mapping, err := c.next.TokenizeWithMapping(file)
	if err != nil {
		return nil, nil, err
	}
	c.cache.Add(key, tokenization{tokens: tokens, mapping: mapping})
	return tokens, mapping, nil
}

// Stats returns cache hits and misses so far.
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func cacheKey(file *models.File) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(file.Language)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(file.Content)
	return d.Sum64()
}
