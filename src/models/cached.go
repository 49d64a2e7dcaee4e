package models

import (
	"context"
	"time"

	"github.com/Protocol-Lattice/go-mission/src/cache"
)

// CachedLLM wraps an Agent and memoises Generate calls. Identical
// prompts within the TTL window are answered from the cache, which
// keeps repeated agent loops cheap during development.
type CachedLLM struct {
	Agent Agent
	Cache *cache.LRUCache
}

// NewCachedLLM creates a caching wrapper around agent.
func NewCachedLLM(agent Agent, size int, ttl time.Duration) *CachedLLM {
	return &CachedLLM{
		Agent: agent,
		Cache: cache.NewLRUCache(size, ttl),
	}
}

// Generate checks the cache before calling the underlying agent.
func (c *CachedLLM) Generate(ctx context.Context, prompt string) (any, error) {
	key := cache.HashKey(prompt)
	if val, ok := c.Cache.Get(key); ok {
		return val, nil
	}

	res, err := c.Agent.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	c.Cache.Set(key, res)
	return res, nil
}

var _ Agent = (*CachedLLM)(nil)
