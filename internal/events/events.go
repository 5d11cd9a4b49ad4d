package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeAccountRegistered  = "account.registered"
	TypeEntryCreated       = "entry.created"
	TypeEntryUpdated       = "entry.updated"
	TypeEntryDeleted       = "entry.deleted"
	TypeEntryStatusChanged = "entry.status_changed"
)

// Event is a single domain event.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// NewEvent creates an event of the given type with data serialized as JSON.
func NewEvent(eventType string, data any) (*Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      payload,
	}, nil
}

// UnmarshalData decodes the event data into v.
func (e *Event) UnmarshalData(v any) error {
	return json.Unmarshal(e.Data, v)
}

// Handler processes events delivered by an InMemoryPublisher.
type Handler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Publisher delivers events to their consumers.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, *Event) error { return nil }

// AccountRegistered is the payload of TypeAccountRegistered.
type AccountRegistered struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
}

// EntryChanged is the payload of the entry.* events.
type EntryChanged struct {
	EntryID   int64  `json:"entry_id"`
	AccountID int64  `json:"account_id"`
	Status    string `json:"status,omitempty"`
	Amount    string `json:"amount,omitempty"`
}
