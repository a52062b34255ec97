package message

import (
	"encoding/json"
	"regexp"
	"testing"
)

var stampPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

func TestChatFields(t *testing.T) {
	m := Chat("Bob", "hi")

	if m.SentName != "Bob" {
		t.Errorf("expected sender Bob, got %q", m.SentName)
	}
	if m.SentType != KindChat {
		t.Errorf("expected kind %q, got %q", KindChat, m.SentType)
	}
	if m.SentMsg != "hi" {
		t.Errorf("expected body 'hi', got %q", m.SentMsg)
	}
	if !stampPattern.MatchString(m.SentDate) {
		t.Errorf("expected HH:MM:SS stamp, got %q", m.SentDate)
	}
}

func TestSystemAndPresenceSenders(t *testing.T) {
	if m := System("x joined"); m.SentName != SystemName || m.SentType != KindSystem {
		t.Errorf("unexpected system message: %+v", m)
	}
	if m := PresenceList(`{"a":"Alice"}`); m.SentName != SystemName || m.SentType != KindPresence {
		t.Errorf("unexpected presence message: %+v", m)
	}
}

func TestWireFormat(t *testing.T) {
	b, err := Chat("Bob", "hi").Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var wire map[string]string
	if err := json.Unmarshal(b, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"sentName", "sentDate", "sentType", "sentMsg"} {
		if _, ok := wire[field]; !ok {
			t.Errorf("wire object missing field %q", field)
		}
	}
	if len(wire) != 4 {
		t.Errorf("expected a flat 4-field object, got %d fields", len(wire))
	}
	if wire["sentType"] != "CHAT" {
		t.Errorf("expected sentType CHAT, got %q", wire["sentType"])
	}
}
