package presence

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/secretChao/ws-chatroom/internal/hub"
	"github.com/secretChao/ws-chatroom/internal/identity"
	"github.com/secretChao/ws-chatroom/internal/message"
)

// Publisher pushes the refreshed online-name list into a room after
// membership or activity changes. The payload is the whole identity
// table, not just the room's members; see DESIGN.md for the scope
// decision.
type Publisher struct {
	hub        *hub.Hub
	identities *identity.Store
	log        *zap.SugaredLogger
}

func NewPublisher(h *hub.Hub, ids *identity.Store, log *zap.SugaredLogger) *Publisher {
	return &Publisher{hub: h, identities: ids, log: log}
}

// Publish broadcasts a PRESENCE_LIST message to every member of the
// room, including whichever session triggered the refresh.
func (p *Publisher) Publish(roomKey string) {
	body, err := json.Marshal(p.identities.Snapshot())
	if err != nil {
		p.log.Errorw("encode presence list", "room", roomKey, "error", err)
		return
	}
	p.hub.Broadcast(roomKey, "", message.PresenceList(string(body)))
}
