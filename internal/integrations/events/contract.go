package events

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageWriter подмножество *kafka.Writer, которое использует Publisher
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
