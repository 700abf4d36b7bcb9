// Package requestcontext carries request-scoped values (acting staff member,
// request id, client metadata, request clock) from middleware to services
// without services importing net/http.
package requestcontext

import (
	"context"
	"time"
)

type key int

const (
	staffIDKey key = iota
	requestIDKey
	clientIPKey
	userAgentKey
	requestTimeKey
)

func stringValue(ctx context.Context, k key) string {
	v, _ := ctx.Value(k).(string)
	return v
}

// StaffID is the subject of the verified staff token, or "" outside the
// staff route group.
func StaffID(ctx context.Context) string { return stringValue(ctx, staffIDKey) }

func WithStaffID(ctx context.Context, staffID string) context.Context {
	return context.WithValue(ctx, staffIDKey, staffID)
}

func RequestID(ctx context.Context) string { return stringValue(ctx, requestIDKey) }

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func ClientIP(ctx context.Context) string { return stringValue(ctx, clientIPKey) }

func UserAgent(ctx context.Context) string { return stringValue(ctx, userAgentKey) }

func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey, clientIP)
	return context.WithValue(ctx, userAgentKey, userAgent)
}

// Now returns the pinned request time, falling back to the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request clock. Tests use it to fix log timestamps.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey, t)
}
