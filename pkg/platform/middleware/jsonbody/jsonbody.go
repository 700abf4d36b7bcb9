// Package jsonbody guards POST routes that expect a JSON document.
package jsonbody

import (
	"mime"
	"net/http"

	dErrors "respass/pkg/domain-errors"
	"respass/pkg/platform/httputil"
)

// Require rejects POST requests whose Content-Type is not application/json or
// whose body is empty.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Expecting JSON POST"))
			return
		}
		if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "No JSON payload"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
