package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/reino/financas-api/internal/events"
)

// StreamAdder is the subset of *redis.Client used by StreamPublisher.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamPublisher appends events to a Redis stream with XADD. Each stream
// entry carries the event type and the JSON-encoded event.
type StreamPublisher struct {
	client StreamAdder
	stream string
	logger *slog.Logger
}

var _ events.Publisher = (*StreamPublisher)(nil)

// NewStreamPublisher creates a publisher writing to stream.
func NewStreamPublisher(client StreamAdder, stream string, logger *slog.Logger) *StreamPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamPublisher{
		client: client,
		stream: stream,
		logger: logger.With("component", "redis_stream_publisher"),
	}
}

// Publish implements events.Publisher.
func (p *StreamPublisher) Publish(ctx context.Context, event *events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"type":  event.Type,
			"event": payload,
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event published",
		"event_id", event.ID,
		"event_type", event.Type,
		"stream_id", id)
	return nil
}
