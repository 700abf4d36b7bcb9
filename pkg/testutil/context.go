package testutil

import (
	"net/http"
	"time"

	"respass/pkg/requestcontext"
)

// WithStaff adds a staff subject id to the request context.
// This simulates what the auth middleware does for authenticated requests.
func WithStaff(req *http.Request, staffID string) *http.Request {
	return req.WithContext(requestcontext.WithStaffID(req.Context(), staffID))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithStaffAt combines WithStaff and WithRequestTime, the typical state of a
// request that reaches a handler.
func WithStaffAt(req *http.Request, staffID string, now time.Time) *http.Request {
	return WithRequestTime(WithStaff(req, staffID), now)
}
