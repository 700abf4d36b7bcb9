package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"respass/internal/resident/models"
	"respass/pkg/domain"
	"respass/pkg/platform/httputil"
	"respass/pkg/requestcontext"
	"respass/pkg/tabular"
)

// Service defines the resident operations exposed over HTTP.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (domain.ResidentID, error)
	Update(ctx context.Context, id domain.ResidentID, req models.RegisterRequest) error
	Delete(ctx context.Context, id domain.ResidentID) error
	ListAll(ctx context.Context) (*tabular.Frame, error)
	Query(ctx context.Context, filters []models.Filter) (*tabular.Frame, error)
	Contact(ctx context.Context, id domain.ResidentID) (*models.Contact, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the resident routes. All of them require a staff credential.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/db/addResident", h.handleAddResident)
	r.Post("/api/db/updateResident", h.handleUpdateResident)
	r.Get("/api/db/deleteResident", h.handleDeleteResident)
	r.Get("/api/db/getAllResidents", h.handleGetAllResidents)
	r.Get("/api/db/getResidentContact", h.handleGetResidentContact)
	r.Post("/api/db/queryResident", h.handleQueryResident)
}

func (h *Handler) handleAddResident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	id, err := h.service.Register(ctx, *req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteText(w, http.StatusOK, id.String())
}

func (h *Handler) handleUpdateResident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.residentID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.Update(ctx, id, *req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleDeleteResident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.residentID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleGetAllResidents(w http.ResponseWriter, r *http.Request) {
	frame, err := h.service.ListAll(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, frame)
}

func (h *Handler) handleGetResidentContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.residentID(w, r)
	if !ok {
		return
	}
	contact, err := h.service.Contact(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contact)
}

func (h *Handler) handleQueryResident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.QueryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	frame, err := h.service.Query(ctx, req.Filters())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, frame)
}

// residentID reads the "id" search param, writing 400 "Invalid ID" when it is
// missing or not a positive integer.
func (h *Handler) residentID(w http.ResponseWriter, r *http.Request) (domain.ResidentID, bool) {
	id, err := domain.ParseResidentID(r.URL.Query().Get("id"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "invalid resident id",
			"request_id", requestcontext.RequestID(r.Context()),
			"id", r.URL.Query().Get("id"),
		)
		httputil.WriteError(w, err)
		return 0, false
	}
	return id, true
}
