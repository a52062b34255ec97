package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Producer publishes relayed-chat audit events. A nil Producer is valid
// and drops everything, so callers need no wiring checks when the event
// stream is not configured.
type Producer struct {
	writer *kafkago.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Producer{writer: w}
}

type chatRelayed struct {
	Room   string `json:"room"`
	Sender string `json:"sender"`
	Body   string `json:"body"`
	SentAt string `json:"sent_at"`
}

func (p *Producer) ChatRelayed(ctx context.Context, room, sender, body string) error {
	if p == nil {
		return nil
	}
	b, err := json.Marshal(chatRelayed{
		Room:   room,
		Sender: sender,
		Body:   body,
		SentAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(room),
		Value: b,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
