// Package correlation carries the request correlation id through a
// context.Context so that every goroutine spawned while serving one request
// logs with that request's id and never with another's.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header and Kafka message header carrying the id.
const Header = "requestId"

// Absent is logged when a context carries no id at all.
const Absent = "-"

type requestIDKey struct{}

// With returns a child of ctx carrying id. A value set further up the chain is
// shadowed, not merged.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// FromContext returns the id stored in ctx, or Absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return Absent
}

// Ensure returns id, or a freshly generated one when id is empty.
func Ensure(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
