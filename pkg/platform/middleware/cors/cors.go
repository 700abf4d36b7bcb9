// Package cors applies the permissive CORS policy the staff front end needs;
// it is served from another origin.
package cors

import (
	"net/http"

	"github.com/go-chi/cors"
)

var policy = cors.Options{
	AllowedOrigins:     []string{"*"},
	AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders:     []string{"Authorization", "Content-Type"},
	ExposedHeaders:     []string{"Warning", "X-Request-ID"},
	OptionsPassthrough: true,
}

// Middleware decorates browser requests through go-chi/cors, then answers
// every OPTIONS with an empty 204 and never lets a response leave without
// Access-Control-Allow-Origin, even for callers that send no Origin header.
func Middleware(next http.Handler) http.Handler {
	return cors.Handler(policy)(anyOrigin(next))
}

func anyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get("Access-Control-Allow-Origin") == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
