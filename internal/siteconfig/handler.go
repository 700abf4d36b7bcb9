package siteconfig

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "respass/pkg/domain-errors"
	"respass/pkg/platform/httputil"
	"respass/pkg/requestcontext"
)

const maxDocumentBytes = 64 << 10

type ConfigService interface {
	Get(ctx context.Context, prop string) (json.RawMessage, error)
	Put(ctx context.Context, prop string, doc json.RawMessage) error
}

type Handler struct {
	service ConfigService
	logger  *slog.Logger
}

func NewHandler(service ConfigService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/api/site/config", h.handleGet)
}

// Register mounts the staff-only write route.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/site/config", h.handlePut)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := h.service.Get(ctx, r.URL.Query().Get("prop"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes+1))
	if err != nil || len(body) > maxDocumentBytes {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	prop := r.URL.Query().Get("prop")
	if err := h.service.Put(ctx, prop, body); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "site config updated",
		"request_id", requestcontext.RequestID(ctx),
		"staff_id", requestcontext.StaffID(ctx),
		"prop", prop,
	)
	w.WriteHeader(http.StatusNoContent)
}
