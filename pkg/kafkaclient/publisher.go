package kafkaclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter is the subset of *kafka.Writer used by Publisher.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes JSON encoded values to a single topic.
type Publisher struct {
	writer KafkaWriter
}

// NewPublisher creates a publisher for topic. Messages with the same key land
// on the same partition.
func NewPublisher(broker, topic string) *Publisher {
	return &Publisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

// PublishJSON marshals v and writes it under key with the given headers.
func (p *Publisher) PublishJSON(ctx context.Context, key string, headers map[string]string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	msg := kafka.Message{Key: []byte(key), Value: value}
	for k, h := range headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(h)})
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.writer.Close() }
