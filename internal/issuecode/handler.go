package issuecode

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"respass/pkg/platform/httputil"
	"respass/pkg/requestcontext"
)

type Checker interface {
	Check(ctx context.Context, residentID, supplied string) error
}

type Handler struct {
	checker Checker
	logger  *slog.Logger
}

func NewHandler(checker Checker, logger *slog.Logger) *Handler {
	return &Handler{checker: checker, logger: logger}
}

// RegisterPublic mounts the unauthenticated check route; scanners call it
// with nothing but the resident's QR code.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/api/ic/check", h.handleCheck)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	if err := h.checker.Check(ctx, q.Get("rid"), q.Get("ic")); err != nil {
		h.logger.InfoContext(ctx, "issue code rejected",
			"request_id", requestcontext.RequestID(ctx),
			"rid", q.Get("rid"),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
