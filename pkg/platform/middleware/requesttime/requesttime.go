// Package requesttime pins one clock reading per request so every row and log
// entry written while serving it agrees on "now".
package requesttime

import (
	"net/http"
	"time"

	"respass/pkg/requestcontext"
)

// Middleware stores the UTC arrival time, truncated to the second that custody
// log timestamps carry.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC().Truncate(time.Second)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), now)))
	})
}
