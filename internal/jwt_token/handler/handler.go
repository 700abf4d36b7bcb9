package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	jwttoken "respass/internal/jwt_token"
	dErrors "respass/pkg/domain-errors"
	"respass/pkg/platform/httputil"
	"respass/pkg/requestcontext"
)

// Issuer mints signed credentials.
type Issuer interface {
	Issue(ctx context.Context, alg string, claims *jwttoken.Claims, sendToChannel bool) (*jwttoken.IssueResult, error)
}

// Handler serves the /api/jwt routes.
type Handler struct {
	issuer Issuer
	logger *slog.Logger
}

func New(issuer Issuer, logger *slog.Logger) *Handler {
	return &Handler{issuer: issuer, logger: logger}
}

// Register mounts the staff-only token routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/jwt/getSignedJWT", h.handleGetSignedJWT)
}

func (h *Handler) handleGetSignedJWT(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var claims *jwttoken.Claims
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		h.logger.WarnContext(ctx, "invalid claim set",
			"request_id", requestID,
			"error", err,
		)
		if errors.Is(err, io.EOF) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "No JSON payload"))
			return
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	send, _ := strconv.ParseBool(r.URL.Query().Get("sendToEmail"))
	alg := r.URL.Query().Get("alg")

	res, err := h.issuer.Issue(ctx, alg, claims, send)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to issue token",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if res.Warning != "" {
		w.Header().Set("Warning", `199 respass "`+sanitizeWarning(res.Warning)+`"`)
	}
	h.logger.InfoContext(ctx, "token issued",
		"request_id", requestID,
		"staff_id", requestcontext.StaffID(ctx),
		"subject", claims.Subject,
		"delivered", send && res.Warning == "",
	)
	httputil.WriteText(w, http.StatusOK, res.Token)
}

// sanitizeWarning keeps the header a valid quoted-string.
func sanitizeWarning(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			out = append(out, '\'')
		case r < 0x20 || r == 0x7f:
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
