package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"respass/pkg/requestcontext"
)

// StaffValidator validates a bearer token and requires the staff role.
type StaffValidator interface {
	ValidateStaffToken(tokenString string) (*StaffClaims, error)
}

// StaffClaims is the subset of verified claims the middleware propagates.
type StaffClaims struct {
	Subject string
	Name    string
	Role    string
}

// BearerToken extracts the token from an Authorization header value.
// Returns "" when the header is absent or not a bearer credential.
func BearerToken(header string) string {
	const bearerPrefix = "Bearer "
	if after, ok := strings.CutPrefix(header, bearerPrefix); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":%q,"error_description":%q}`, errCode, errDesc))
}

// RequireStaff rejects requests that do not carry a valid staff credential and
// stores the staff subject id in the request context.
func RequireStaff(validator StaffValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			claims, err := validator.ValidateStaffToken(BearerToken(r.Header.Get("Authorization")))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access",
					"error", err,
					"request_id", requestID,
					"path", r.URL.Path,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Failed to authenticate JWT: "+err.Error())
				return
			}

			ctx = requestcontext.WithStaffID(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
