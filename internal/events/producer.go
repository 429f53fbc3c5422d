package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CloudEvent is the envelope every published event is wrapped in.
type CloudEvent struct {
	SpecVersion string          `json:"specversion"`
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Type        string          `json:"type"`
	Time        time.Time       `json:"time"`
	Data        json.RawMessage `json:"data"`
}

// NewCloudEvent wraps event data in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data interface{}) (*CloudEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return &CloudEvent{
		SpecVersion: "1.0",
		ID:          uuid.NewString(),
		Source:      source,
		Type:        eventType,
		Time:        time.Now().UTC(),
		Data:        payload,
	}, nil
}

// ParseData unmarshals the event payload into v.
func (e *CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Publisher publishes lifecycle events. Services depend on this interface so
// tests can substitute a recording fake.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event *CloudEvent) error
}

// KafkaProducer is the Kafka-backed Publisher.
type KafkaProducer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewKafkaProducer creates a producer writing to the given brokers.
func NewKafkaProducer(brokers []string, logger *zap.Logger) *KafkaProducer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaProducer{writer: writer, logger: logger}
}

// Publish writes one CloudEvent to the topic, keyed for per-booking ordering.
func (p *KafkaProducer) Publish(ctx context.Context, topic, key string, event *CloudEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal cloud event: %w", err)
	}

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("type", event.Type),
		zap.String("key", key),
	)
	return nil
}

// Close closes the underlying Kafka writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
