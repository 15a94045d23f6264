package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/touristapi/internal/core/domain"
)

// Subscriber consumes lookup events from JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber connects to NATS and enables JetStream.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := connect(url)
	if err != nil {
		return nil, err
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeLookupCompleted delivers each LookupCompleted event to handler.
// Events that fail to decode or whose handler errors are redelivered, up to
// three attempts.
func (s *Subscriber) SubscribeLookupCompleted(ctx context.Context, durable string, handler func(ctx context.Context, e *domain.LookupCompleted) error) error {
	sub, err := s.js.Subscribe(SubjectLookupCompleted, func(msg *nats.Msg) {
		if err := HandleLookupMsg(ctx, msg.Data, handler); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", SubjectLookupCompleted, err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

// HandleLookupMsg decodes one event payload and passes it to handler.
func HandleLookupMsg(ctx context.Context, data []byte, handler func(ctx context.Context, e *domain.LookupCompleted) error) error {
	var e domain.LookupCompleted
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("decode lookup event: %w", err)
	}
	return handler(ctx, &e)
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
