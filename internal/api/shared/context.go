package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type of the request context keys set by the API.
type ContextKey string

// Context keys
const (
	// AccountIDContextKey holds the authenticated account ID (int64).
	AccountIDContextKey ContextKey = "accountID"

	// TraceIDKey holds the request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID stores traceID in ctx, generating a new one when empty.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SetAccountID stores the authenticated account ID in ctx.
func SetAccountID(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, AccountIDContextKey, accountID)
}

// GetAccountID returns the authenticated account ID, if any.
func GetAccountID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AccountIDContextKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
