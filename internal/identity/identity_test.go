package identity

import (
	"fmt"
	"sync"
	"testing"
)

func TestSetGetRemove(t *testing.T) {
	s := NewStore()
	s.Set("10.0.0.1", "Alice")

	if name, ok := s.Lookup("10.0.0.1"); !ok || name != "Alice" {
		t.Errorf("expected Alice, got %q (ok=%v)", name, ok)
	}

	s.Set("10.0.0.1", "Alicia")
	if name := s.Name("10.0.0.1"); name != "Alicia" {
		t.Errorf("expected last write to win, got %q", name)
	}

	s.Remove("10.0.0.1")
	if _, ok := s.Lookup("10.0.0.1"); ok {
		t.Error("expected key to be gone after Remove")
	}
}

func TestUnknownFallback(t *testing.T) {
	s := NewStore()
	if name := s.Name("192.168.1.9"); name != Unknown {
		t.Errorf("expected %q for unbound key, got %q", Unknown, name)
	}
}

func TestRemoveAbsentKey(t *testing.T) {
	s := NewStore()
	s.Remove("never-bound")
	if got := len(s.Snapshot()); got != 0 {
		t.Errorf("expected empty store, got %d entries", got)
	}
}

func TestSnapshotDetached(t *testing.T) {
	s := NewStore()
	s.Set("a", "Alice")

	snap := s.Snapshot()
	snap["b"] = "Bob"

	if _, ok := s.Lookup("b"); ok {
		t.Error("mutating a snapshot must not touch the store")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("10.0.0.%d", n)
			s.Set(key, fmt.Sprintf("user-%d", n))
			_ = s.Name(key)
			if n%2 == 0 {
				s.Remove(key)
			}
		}(i)
	}
	wg.Wait()

	if got := len(s.Snapshot()); got != 25 {
		t.Errorf("expected 25 surviving entries, got %d", got)
	}
}
