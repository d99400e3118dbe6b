// Package kafka relays outbox messages to a Kafka topic as JSON envelopes
// keyed by aggregate id, so events of one aggregate stay ordered within a
// partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockway/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	envelopeVersion = 1
	producerName    = "stockway"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope wraps an event payload with the metadata consumers route and
// deduplicate on.
type Envelope struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	Version     int             `json:"version"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Producer    string          `json:"producer"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
}

type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a synchronous writer that waits for all in-sync
// replicas, so a nil error means the batch is durable.
func NewPublisher(brokers []string, topic string) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	})
}

func newPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		value, err := json.Marshal(Envelope{
			EventID:     m.ID.String(),
			EventType:   m.EventName,
			Version:     envelopeVersion,
			OccurredAt:  m.OccurredAt,
			Producer:    producerName,
			AggregateID: m.AggregateID.String(),
			Payload:     m.Payload,
		})
		if err != nil {
			return fmt.Errorf("encode envelope %s: %w", m.ID, err)
		}

		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: value,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(m.EventName)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
