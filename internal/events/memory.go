package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryPublisher dispatches events synchronously to registered handlers.
type InMemoryPublisher struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

var _ Publisher = (*InMemoryPublisher)(nil)

// NewInMemoryPublisher creates an InMemoryPublisher with no handlers.
func NewInMemoryPublisher(logger *slog.Logger) *InMemoryPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryPublisher{
		handlers: make([]Handler, 0),
		logger:   logger.With("component", "in_memory_publisher"),
	}
}

// Subscribe adds a handler that receives every subsequent event.
func (p *InMemoryPublisher) Subscribe(handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, handler)
	p.logger.Debug("registered event handler", "handler_count", len(p.handlers))
}

// Publish delivers event to every handler. A failing handler does not stop
// delivery to the others; the first error is returned.
func (p *InMemoryPublisher) Publish(ctx context.Context, event *Event) error {
	p.mu.RLock()
	handlers := make([]Handler, len(p.handlers))
	copy(handlers, p.handlers)
	p.mu.RUnlock()

	p.logger.Debug("publishing event",
		"event_id", event.ID,
		"event_type", event.Type,
		"handler_count", len(handlers))

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			p.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
