package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/afrobeatles/fanstore/internal/metrics"
	"github.com/afrobeatles/fanstore/pkg/logger"
)

// Event is the envelope published for storefront events.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Service    string    `json:"service"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher wraps a NATS connection and publishes storefront events via
// JetStream. A nil *Publisher is a valid no-op, so eventing stays optional.
type Publisher struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
	service string
}

// New creates a new Publisher with JetStream enabled.
func New(nc *nats.Conn, subject, service string) (*Publisher, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}
	return &Publisher{
		nc:      nc,
		js:      js,
		subject: subject,
		service: service,
	}, nil
}

// Publish serializes and publishes an event envelope to the configured subject.
func (p *Publisher) Publish(_ context.Context, eventType string, payload any) error {
	if p == nil {
		return nil
	}

	env := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Service:    p.service,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	data, err := json.Marshal(env)
	if err != nil {
		logger.S().Errorw("publisher.marshal_failed",
			"subject", p.subject,
			"event_type", eventType,
			"error", err,
		)
		metrics.EventsPublished.WithLabelValues(p.subject, "error").Inc()
		return err
	}

	msg := &nats.Msg{
		Subject: p.subject,
		Data:    data,
		Header: nats.Header{
			"event_type":   []string{eventType},
			"event_id":     []string{env.ID},
			"service":      []string{p.service},
			"content_type": []string{"application/json"},
		},
	}

	if _, err := p.js.PublishMsg(msg); err != nil {
		logger.S().Errorw("publisher.publish_failed",
			"subject", p.subject,
			"event_type", eventType,
			"error", err,
		)
		metrics.EventsPublished.WithLabelValues(p.subject, "error").Inc()
		return err
	}

	metrics.EventsPublished.WithLabelValues(p.subject, "ok").Inc()
	return nil
}
