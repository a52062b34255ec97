package message

import (
	"encoding/json"
	"time"
)

// Kind tags who authored a message and how clients should render it.
type Kind string

const (
	KindSystem   Kind = "SYSTEM"
	KindChat     Kind = "CHAT"
	KindPresence Kind = "PRESENCE_LIST"
)

// SystemName is the sender name stamped on server-authored messages.
const SystemName = "system"

// EchoName is the sender name stamped on the personal echo a client
// receives for its own chat message.
const EchoName = "me"

// TimeLayout is the wall-clock stamp format carried on the wire.
const TimeLayout = "15:04:05"

// Message is one outbound payload. Values are immutable once built and
// live only for the duration of a delivery attempt.
type Message struct {
	SentName string `json:"sentName"`
	SentDate string `json:"sentDate"`
	SentType Kind   `json:"sentType"`
	SentMsg  string `json:"sentMsg"`
}

func System(body string) Message {
	return Message{
		SentName: SystemName,
		SentDate: time.Now().Format(TimeLayout),
		SentType: KindSystem,
		SentMsg:  body,
	}
}

func Chat(sender, body string) Message {
	return Message{
		SentName: sender,
		SentDate: time.Now().Format(TimeLayout),
		SentType: KindChat,
		SentMsg:  body,
	}
}

// PresenceList wraps an already-serialized key -> name mapping.
func PresenceList(body string) Message {
	return Message{
		SentName: SystemName,
		SentDate: time.Now().Format(TimeLayout),
		SentType: KindPresence,
		SentMsg:  body,
	}
}

func (m Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}
