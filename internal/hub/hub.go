package hub

import (
	"sync"

	"go.uber.org/zap"

	"github.com/secretChao/ws-chatroom/internal/message"
	"github.com/secretChao/ws-chatroom/internal/metrics"
)

// Hub owns the room registry and fans messages out to room members.
// All state is private to the instance so tests get a fresh registry.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	log   *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Hub {
	return &Hub{
		rooms: make(map[string]*Room),
		log:   log,
	}
}

// Room returns the room for key, creating it on first use. Repeated
// calls for the same key return the same instance for the hub's
// lifetime; two sessions racing to join a brand-new room converge on
// one room object.
func (h *Hub) Room(key string) *Room {
	h.mu.RLock()
	r, ok := h.rooms[key]
	h.mu.RUnlock()
	if ok {
		return r
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok = h.rooms[key]; ok {
		return r
	}
	r = newRoom(key)
	h.rooms[key] = r
	return r
}

// Unicast delivers msg to one member of the room, addressed by session
// id. An absent target or a failed send is logged and swallowed; the
// caller never sees an error.
func (h *Hub) Unicast(roomKey, sessionID string, msg message.Message) {
	target := h.Room(roomKey).find(sessionID)
	if target == nil {
		h.log.Warnw("recipient offline", "room", roomKey, "session", sessionID)
		return
	}
	h.deliver(roomKey, target, msg)
}

// Broadcast delivers msg to every open member of the room except the
// session identified by excludeID. Pass an empty excludeID to address
// everyone. One recipient's failure never blocks the rest, and no
// ordering is guaranteed between recipients.
func (h *Hub) Broadcast(roomKey, excludeID string, msg message.Message) {
	for _, s := range h.Room(roomKey).Snapshot() {
		if !s.IsOpen() || s.ID() == excludeID {
			continue
		}
		h.deliver(roomKey, s, msg)
	}
}

func (h *Hub) deliver(roomKey string, s Session, msg message.Message) {
	payload, err := msg.Encode()
	if err != nil {
		h.log.Errorw("encode message", "room", roomKey, "error", err)
		return
	}
	if err := s.SendText(string(payload)); err != nil {
		metrics.DeliveryFailures.Inc()
		h.log.Errorw("send message failed", "room", roomKey, "session", s.ID(), "error", err)
	}
}
