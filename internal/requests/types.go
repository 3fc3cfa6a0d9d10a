package requests

import (
	"context"

	"github.com/segmentio/kafka-go"

	"userorders/internal/enrich"
	"userorders/internal/models"
)

// MessageIterator defines the contract for consuming messages from a Kafka topic.
// Implementations are responsible for the lifecycle of the consumer connection.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages. The channel
	// is closed by the implementation when the consumer is stopped or the
	// underlying source is exhausted.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been fully handled.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// OrdersService runs one aggregation.
type OrdersService interface {
	OrdersByUserID(ctx context.Context, userID, requestID string) *enrich.Stream[models.UserOrder]
}

// RecordPublisher delivers a record downstream.
type RecordPublisher interface {
	PublishJSON(ctx context.Context, key string, headers map[string]string, v any) error
}

// Request asks for the orders of one user.
type Request struct {
	UserID string `json:"userId"`
	// RequestID comes from the message header, not the body.
	RequestID string `json:"-"`
}
