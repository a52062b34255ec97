package identity

import "sync"

// Unknown is returned for peers that never identified themselves; they
// must still be nameable in broadcasts.
const Unknown = "unknown"

// Store maps a peer-address key to the display name chosen at handshake
// time. Last write wins on identical keys.
type Store struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewStore() *Store {
	return &Store{names: make(map[string]string)}
}

func (s *Store) Set(key, name string) {
	s.mu.Lock()
	s.names[key] = name
	s.mu.Unlock()
}

// Lookup returns the bound name and whether the key is known.
func (s *Store) Lookup(key string) (string, bool) {
	s.mu.RLock()
	name, ok := s.names[key]
	s.mu.RUnlock()
	return name, ok
}

// Name returns the bound name, or Unknown when the key was never bound.
func (s *Store) Name(key string) string {
	if name, ok := s.Lookup(key); ok {
		return name
	}
	return Unknown
}

func (s *Store) Remove(key string) {
	s.mu.Lock()
	delete(s.names, key)
	s.mu.Unlock()
}

// Snapshot copies the whole table, detached from the live map.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	out := make(map[string]string, len(s.names))
	for k, v := range s.names {
		out[k] = v
	}
	s.mu.RUnlock()
	return out
}
