package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/touristapi/internal/core/domain"
)

// Stream and subject names for lookup events.
const (
	StreamLookups          = "PLACES_LOOKUPS"
	SubjectLookups         = "places.lookup.>"
	SubjectLookupCompleted = "places.lookup.completed"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the lookup stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := connect(url)
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := LookupStreamConfig()
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// LookupStreamConfig describes the PLACES_LOOKUPS stream.
func LookupStreamConfig() nats.StreamConfig {
	return nats.StreamConfig{
		Name:      StreamLookups,
		Subjects:  []string{SubjectLookups},
		Retention: nats.WorkQueuePolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
}

// PublishLookupCompleted publishes e on places.lookup.completed.
func (p *Publisher) PublishLookupCompleted(ctx context.Context, e *domain.LookupCompleted) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal lookup event: %w", err)
	}
	msg := &nats.Msg{
		Subject: SubjectLookupCompleted,
		Data:    data,
		Header:  nats.Header{},
	}
	// Dedupe redelivered publishes within the stream's duplicate window.
	msg.Header.Set(nats.MsgIdHdr, e.ID)
	if _, err := p.js.PublishMsg(msg, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectLookupCompleted, err)
	}
	return nil
}

// Conn exposes the underlying connection for readiness checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

func connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("touristapi"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}
