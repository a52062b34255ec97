package hub

import (
	"sync"
	"sync/atomic"
)

// Room holds the live member set and online counter for one room key.
// Rooms are created lazily by the Hub and never destroyed; an empty
// room costs a map entry.
type Room struct {
	key     string
	mu      sync.RWMutex
	members map[string]Session // session id -> session
	online  atomic.Int64
}

func newRoom(key string) *Room {
	return &Room{key: key, members: make(map[string]Session)}
}

func (r *Room) Key() string { return r.key }

// Add registers a session in the room. Idempotent: the counter moves
// only when membership actually changed. Returns whether it did.
func (r *Room) Add(s Session) bool {
	r.mu.Lock()
	_, exists := r.members[s.ID()]
	if !exists {
		r.members[s.ID()] = s
	}
	r.mu.Unlock()
	if exists {
		return false
	}
	r.online.Add(1)
	return true
}

// Remove drops a session by id. The counter decrements only when the
// session was actually a member, so it never goes below the true count.
func (r *Room) Remove(sessionID string) bool {
	r.mu.Lock()
	_, exists := r.members[sessionID]
	if exists {
		delete(r.members, sessionID)
	}
	r.mu.Unlock()
	if !exists {
		return false
	}
	r.online.Add(-1)
	return true
}

func (r *Room) Online() int {
	return int(r.online.Load())
}

// Snapshot copies the member set for iteration. Members may close
// between the snapshot and a send; delivery is best-effort.
func (r *Room) Snapshot() []Session {
	r.mu.RLock()
	out := make([]Session, 0, len(r.members))
	for _, s := range r.members {
		out = append(out, s)
	}
	r.mu.RUnlock()
	return out
}

func (r *Room) find(sessionID string) Session {
	r.mu.RLock()
	s := r.members[sessionID]
	r.mu.RUnlock()
	return s
}
