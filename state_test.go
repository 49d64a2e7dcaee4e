package mission

import (
	"reflect"
	"sync"
	"testing"
)

func TestSharedStateRoundTrip(t *testing.T) {
	s := NewSharedState()

	if _, ok := s.Get("missing"); ok {
		t.Fatalf("did not expect a value for an unset key")
	}

	s.Set("answer", 42)
	s.Set("answer", "forty-two")
	v, ok := s.Get("answer")
	if !ok || v != "forty-two" {
		t.Fatalf("expected last write to win, got %v", v)
	}

	s.Delete("answer")
	if _, ok := s.Get("answer"); ok {
		t.Fatalf("expected the key to be deleted")
	}
}

func TestSharedStateKeysSorted(t *testing.T) {
	s := NewSharedState()
	s.Set("zeta", 1)
	s.Set("alpha", 2)
	s.Set("mid", 3)

	want := []string{"alpha", "mid", "zeta"}
	if got := s.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSharedStateRender(t *testing.T) {
	s := NewSharedState()
	s.Set("text", "plain value")
	s.Set("data", map[string]any{"count": 3})

	got, ok := s.Render("text")
	if !ok || got != "plain value" {
		t.Fatalf("expected the string verbatim, got %q", got)
	}

	got, ok = s.Render("data")
	if !ok || got != `{"count":3}` {
		t.Fatalf("expected JSON encoding, got %q", got)
	}

	if _, ok := s.Render("missing"); ok {
		t.Fatalf("did not expect a rendering for an unset key")
	}
}

func TestSharedStateConcurrentWrites(t *testing.T) {
	s := NewSharedState()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set("shared", n)
			s.Get("shared")
		}(i)
	}
	wg.Wait()

	if _, ok := s.Get("shared"); !ok {
		t.Fatalf("expected a value after concurrent writes")
	}
}
