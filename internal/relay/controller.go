package relay

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/secretChao/ws-chatroom/internal/events"
	"github.com/secretChao/ws-chatroom/internal/hub"
	"github.com/secretChao/ws-chatroom/internal/identity"
	"github.com/secretChao/ws-chatroom/internal/message"
	"github.com/secretChao/ws-chatroom/internal/metrics"
	"github.com/secretChao/ws-chatroom/internal/presence"
	"github.com/secretChao/ws-chatroom/internal/presencemirror"
	"github.com/secretChao/ws-chatroom/internal/rooms"
)

// StatusServerError is the close status sent before cleanup when the
// transport reports an error for a session.
const StatusServerError = 1011

// Controller drives the per-session lifecycle: handshake, inbound
// messages, and the single terminal close or error event. The transport
// layer serializes events per session; events for different sessions
// arrive concurrently.
type Controller struct {
	hub        *hub.Hub
	identities *identity.Store
	presence   *presence.Publisher
	mirror     *presencemirror.Mirror
	events     *events.Producer
	log        *zap.SugaredLogger
}

func NewController(h *hub.Hub, ids *identity.Store, pub *presence.Publisher, mirror *presencemirror.Mirror, ev *events.Producer, log *zap.SugaredLogger) *Controller {
	return &Controller{
		hub:        h,
		identities: ids,
		presence:   pub,
		mirror:     mirror,
		events:     ev,
		log:        log,
	}
}

// OnOpen registers a freshly upgraded session in its room, acknowledges
// the join to the session itself, and tells the rest of the room.
func (c *Controller) OnOpen(s hub.Session) {
	key, err := rooms.KeyFromPath(s.Path())
	if err != nil {
		c.log.Errorw("room key derivation failed", "path", s.Path(), "error", err)
		_ = s.Close(StatusServerError)
		return
	}
	name := c.identities.Name(s.RemoteAddr())

	room := c.hub.Room(key)
	room.Add(s)
	c.log.Infow("client joined",
		"name", name, "addr", s.RemoteAddr(), "room", key, "online", room.Online())

	c.hub.Unicast(key, s.ID(), message.System(fmt.Sprintf("signed in as %s, entered room %s", name, key)))
	c.hub.Broadcast(key, s.ID(), message.System(fmt.Sprintf("%s entered room %s", name, key)))
	c.presence.Publish(key)

	if err := c.mirror.Online(context.Background(), s.RemoteAddr(), name); err != nil {
		c.log.Warnw("presence mirror update failed", "addr", s.RemoteAddr(), "error", err)
	}
}

// OnMessage echoes the text back to the sender and relays it to the
// rest of the room. Presence is republished on every message, matching
// the behavior this service replaces; a membership-driven trigger would
// be cheaper.
func (c *Controller) OnMessage(s hub.Session, text string) {
	key, err := rooms.KeyFromPath(s.Path())
	if err != nil {
		c.log.Errorw("room key derivation failed", "path", s.Path(), "error", err)
		return
	}
	name := c.identities.Name(s.RemoteAddr())
	c.log.Infow("message received", "name", name, "addr", s.RemoteAddr(), "room", key)

	c.hub.Unicast(key, s.ID(), message.Chat(message.EchoName, text))
	c.hub.Broadcast(key, s.ID(), message.Chat(name, text))
	c.presence.Publish(key)

	metrics.RelayedMessages.Inc()
	if err := c.events.ChatRelayed(context.Background(), key, name, text); err != nil {
		c.log.Warnw("chat event publish failed", "room", key, "error", err)
	}
	if err := c.mirror.Refresh(context.Background(), s.RemoteAddr()); err != nil {
		c.log.Warnw("presence mirror refresh failed", "addr", s.RemoteAddr(), "error", err)
	}
}

// OnClose tears a session down after a normal close: membership and
// identity go away, the room hears a departure notice and a refreshed
// presence list.
func (c *Controller) OnClose(s hub.Session) {
	c.teardown(s)
}

// OnError handles a transport-reported error: the session is closed
// with a server-error status, then cleaned up exactly like a normal
// close. Never fatal to other sessions or the process.
func (c *Controller) OnError(s hub.Session, cause error) {
	c.log.Errorw("transport error",
		"session", s.ID(), "addr", s.RemoteAddr(), "error", cause)
	_ = s.Close(StatusServerError)
	c.teardown(s)
}

func (c *Controller) teardown(s hub.Session) {
	key, err := rooms.KeyFromPath(s.Path())
	if err != nil {
		c.log.Errorw("room key derivation failed", "path", s.Path(), "error", err)
		return
	}
	name := c.identities.Name(s.RemoteAddr())

	room := c.hub.Room(key)
	room.Remove(s.ID())
	c.identities.Remove(s.RemoteAddr())
	c.log.Infow("client left",
		"name", name, "addr", s.RemoteAddr(), "room", key, "online", room.Online())

	c.hub.Broadcast(key, s.ID(), message.System(fmt.Sprintf("%s disconnected", name)))
	c.presence.Publish(key)

	if err := c.mirror.Offline(context.Background(), s.RemoteAddr()); err != nil {
		c.log.Warnw("presence mirror removal failed", "addr", s.RemoteAddr(), "error", err)
	}
}
