package service

import (
	"context"
	"log/slog"

	"github.com/reino/financas-api/internal/events"
	"github.com/reino/financas-api/internal/platform/logger"
)

// publish emits an event after a committed change. Failures are logged only.
func publish(ctx context.Context, fallback *slog.Logger, p events.Publisher, eventType string, data any) {
	if p == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, fallback)

	event, err := events.NewEvent(eventType, data)
	if err != nil {
		log.Error("failed to build event", "error", err, "event_type", eventType)
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.Warn("failed to publish event",
			"error", err,
			"event_id", event.ID,
			"event_type", eventType)
	}
}
