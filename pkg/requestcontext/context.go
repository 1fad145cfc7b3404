// Package requestcontext carries request-scoped values from the HTTP boundary
// into usecases without pulling net/http into the core.
package requestcontext

import (
	"context"
	"time"
)

type (
	requestTimeKey struct{}
	requestIDKey   struct{}
)

// Now returns the request-scoped time, falling back to the wall clock for
// non-HTTP contexts (sweeper, tests that don't inject one).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}

// WithTime injects a fixed time. Set by middleware from Ax-Request-At, and by
// tests that exercise deadline behavior.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t.UTC())
}

// RequestID returns the idempotency request id, if the middleware stored one.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
