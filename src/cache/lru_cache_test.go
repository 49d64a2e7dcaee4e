package cache

import (
	"testing"
	"time"
)

func TestLRUCacheBasics(t *testing.T) {
	c := NewLRUCache(2, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("did not expect a hit for an unset key")
	}

	c.Set("a", 1)
	c.Set("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %v (%v)", v, ok)
	}

	c.Set("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Fatalf("expected the updated value, got %v", v)
	}
	if c.Len() != 2 {
		t.Fatalf("updates must not grow the cache, got %d entries", c.Len())
	}
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := NewLRUCache(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a to survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("expected c to be present")
	}
}

func TestLRUCacheTTLExpiry(t *testing.T) {
	c := NewLRUCache(4, 10*time.Millisecond)
	c.Set("k", "v")
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected a fresh entry to hit")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected the entry to expire")
	}
}

func TestHashKeyStable(t *testing.T) {
	if HashKey("prompt") != HashKey("prompt") {
		t.Fatalf("hash must be deterministic")
	}
	if HashKey("prompt") == HashKey("other prompt") {
		t.Fatalf("distinct inputs must hash differently")
	}
}
