package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is the type of every request-scoped value set by the API layer.
type ContextKey string

const (
	// OwnerSubjectContextKey holds the subject of a validated owner token.
	OwnerSubjectContextKey ContextKey = "ownerSubject"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID (32 hex characters).
	TraceIDLength = 16
)

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "" when there is none.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SetOwnerSubject records the authenticated owner on the context.
func SetOwnerSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, OwnerSubjectContextKey, subject)
}

// GetOwnerSubject returns the authenticated owner, if any.
func GetOwnerSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(OwnerSubjectContextKey).(string)
	return subject, ok && subject != ""
}

// generateTraceID returns 32 random hex characters. If crypto/rand fails it
// falls back to a random UUID without dashes, never to a static value.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n,
			"fallback", "uuid")
		id := uuid.New()
		return hex.EncodeToString(id[:])
	}
	return hex.EncodeToString(b)
}
