package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"respass/internal/parcel/models"
	"respass/pkg/platform/httputil"
	"respass/pkg/requestcontext"
	"respass/pkg/tabular"
)

// Service defines the parcel operations exposed over HTTP.
type Service interface {
	Intake(ctx context.Context, items []models.IntakeItem, staffID string) (*models.IntakeResult, error)
	ConfirmCollection(ctx context.Context, ids []int64, staffID, recipientJWT string) (int64, error)
	QueryInventory(ctx context.Context, building, unit string) (*tabular.Frame, error)
}

// Handler handles parcel inventory endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the staff-only routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/db/addInventory", h.handleAddInventory)
	r.Post("/api/db/submitInventoryCollection", h.handleSubmitCollection)
}

// RegisterPublic mounts routes residents reach without a staff credential.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/api/db/inventoryQuery", h.handleInventoryQuery)
}

func (h *Handler) handleAddInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.IntakeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Intake(ctx, req.Items(), requestcontext.StaffID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleSubmitCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CollectionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	n, err := h.service.ConfirmCollection(ctx, req.Collected, requestcontext.StaffID(ctx), req.RecipientJWT)
	if err != nil {
		h.logger.WarnContext(ctx, "collection not recorded",
			"request_id", requestID,
			"ids", req.Collected,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.CollectionResponse{
		Count:   n,
		Message: fmt.Sprintf("%d items marked as collected", n),
	})
}

func (h *Handler) handleInventoryQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.InventoryQueryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	frame, err := h.service.QueryInventory(ctx, req.Building, req.Unit)
	if err != nil {
		h.logger.ErrorContext(ctx, "inventory query failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, frame)
}
