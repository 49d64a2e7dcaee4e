package mission

import (
	"sort"
	"sync"

	json "github.com/alpkeskin/gotoon"
)

// SharedState is a mission-scoped key/value store. Orchestrator and
// delegated specialists use it to hand data to each other without direct
// coupling. Writes are last-wins per key; entries live until explicitly
// removed or the mission is discarded.
type SharedState struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewSharedState returns an empty store.
func NewSharedState() *SharedState {
	return &SharedState{values: make(map[string]any)}
}

// Set stores value under key, replacing any previous value.
func (s *SharedState) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *SharedState) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Delete removes key from the store.
func (s *SharedState) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Keys returns the stored keys in sorted order.
func (s *SharedState) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render returns the value under key as text suitable for feeding back
// into a transcript. Non-string values are JSON-encoded.
func (s *SharedState) Render(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	if str, isStr := v.(string); isStr {
		return str, true
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}
