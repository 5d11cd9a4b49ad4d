package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reino/financas-api/internal/events"
	redisplatform "github.com/reino/financas-api/internal/platform/redis"
)

const (
	eventsNone   = "none"
	eventsMemory = "memory"
	eventsRedis  = "redis"
)

// setupPublisher builds the publisher named by events.backend.
func (app *application) setupPublisher(ctx context.Context) (events.Publisher, error) {
	cfg := app.config.Events

	switch cfg.Backend {
	case eventsNone, "":
		return events.NopPublisher{}, nil

	case eventsMemory:
		p := events.NewInMemoryPublisher(app.logger)
		p.Subscribe(eventLogHandler(app.logger.With("component", "event_log")))
		return p, nil

	case eventsRedis:
		client, err := redisplatform.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.redisClient = client
		app.logger.Info("publishing events to redis stream", "stream", cfg.Stream)
		return redisplatform.NewStreamPublisher(client, cfg.Stream, app.logger), nil

	default:
		return nil, fmt.Errorf("unsupported events backend %q", cfg.Backend)
	}
}

// eventLogHandler records every event at info level.
func eventLogHandler(logger *slog.Logger) events.Handler {
	return events.HandlerFunc(func(ctx context.Context, event *events.Event) error {
		logger.InfoContext(ctx, "domain event",
			"event_id", event.ID,
			"event_type", event.Type,
			"data", string(event.Data))
		return nil
	})
}
