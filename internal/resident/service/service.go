package service

import (
	"context"
	"errors"
	"log/slog"

	"respass/internal/notify"
	"respass/internal/platform/metrics"
	"respass/internal/resident/models"
	"respass/pkg/domain"
	dErrors "respass/pkg/domain-errors"
	"respass/pkg/platform/sentinel"
	"respass/pkg/requestcontext"
	"respass/pkg/tabular"
)

type Store interface {
	Insert(ctx context.Context, r models.Resident) (domain.ResidentID, error)
	Update(ctx context.Context, r models.Resident) error
	Delete(ctx context.Context, id domain.ResidentID) error
	FindByID(ctx context.Context, id domain.ResidentID) (*models.Resident, error)
	ListAll(ctx context.Context) (*tabular.Frame, error)
	Query(ctx context.Context, filters []models.Filter) (*tabular.Frame, error)
}

// StoreTx scopes a row write and the matching provider call.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

type Notifier interface {
	Identify(ctx context.Context, u notify.User) error
	DeleteUser(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (*notify.User, error)
}

var (
	ErrResidentNotFound = dErrors.New(dErrors.CodeNotFound, "Resident not found")
	ErrNoContact        = dErrors.New(dErrors.CodeNotFound, "No contact on record")
)

// Service manages resident identities and their provider-side contacts.
type Service struct {
	store    Store
	tx       StoreTx
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, tx StoreTx, notifier Notifier, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, tx: tx, notifier: notifier, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register inserts a resident and, when an email or phone is given, hands the
// contact to the provider. A provider failure rolls the insert back.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (domain.ResidentID, error) {
	phone, err := notify.NormalizePhone(req.Phone)
	if err != nil {
		return 0, err
	}

	var id domain.ResidentID
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		newID, err := store.Insert(ctx, models.Resident{
			Name:     req.Name,
			Building: req.Building,
			Unit:     req.Unit,
			Role:     models.RoleResident,
		})
		if err != nil {
			return err
		}
		id = newID
		if !req.HasContact() {
			return nil
		}
		return s.notifier.Identify(ctx, notify.User{ID: id.String(), Name: req.Name, Email: req.Email, Phone: phone})
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to register resident",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return 0, translate(err, "failed to register resident")
	}

	s.metrics.IncrementResidentsRegistered()
	s.logger.InfoContext(ctx, "resident registered",
		"request_id", requestcontext.RequestID(ctx),
		"resident_id", id,
		"identified", req.HasContact(),
	)
	return id, nil
}

// Update rewrites a resident and refreshes the provider contact when one is
// given.
func (s *Service) Update(ctx context.Context, id domain.ResidentID, req models.RegisterRequest) error {
	phone, err := notify.NormalizePhone(req.Phone)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		if err := store.Update(ctx, models.Resident{
			ID:       id,
			Name:     req.Name,
			Building: req.Building,
			Unit:     req.Unit,
		}); err != nil {
			return err
		}
		if !req.HasContact() {
			return nil
		}
		return s.notifier.Identify(ctx, notify.User{ID: id.String(), Name: req.Name, Email: req.Email, Phone: phone})
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ErrResidentNotFound
		}
		return translate(err, "failed to update resident")
	}
	s.logger.InfoContext(ctx, "resident updated",
		"request_id", requestcontext.RequestID(ctx),
		"resident_id", id,
	)
	return nil
}

// Delete removes the identity row, then deletes the provider user on a best
// effort basis.
func (s *Service) Delete(ctx context.Context, id domain.ResidentID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ErrResidentNotFound
		}
		return translate(err, "failed to delete resident")
	}

	if err := s.notifier.DeleteUser(ctx, id.String()); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "provider user not deleted",
			"request_id", requestcontext.RequestID(ctx),
			"resident_id", id,
			"error", err,
		)
	}
	s.logger.InfoContext(ctx, "resident deleted",
		"request_id", requestcontext.RequestID(ctx),
		"resident_id", id,
	)
	return nil
}

func (s *Service) ListAll(ctx context.Context) (*tabular.Frame, error) {
	frame, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, translate(err, "failed to list residents")
	}
	return frame, nil
}

func (s *Service) Query(ctx context.Context, filters []models.Filter) (*tabular.Frame, error) {
	frame, err := s.store.Query(ctx, filters)
	if err != nil {
		return nil, translate(err, "failed to query residents")
	}
	return frame, nil
}

// Contact returns the provider's contact record for a known resident.
func (s *Service) Contact(ctx context.Context, id domain.ResidentID) (*models.Contact, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, translate(err, "failed to look up resident")
	}

	u, err := s.notifier.GetUser(ctx, id.String())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, ErrNoContact
		}
		if errors.Is(err, sentinel.ErrUnsupported) {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "contact lookup is not available")
		}
		return nil, translate(err, "failed to fetch contact")
	}
	return &models.Contact{Email: u.Email, Phone: u.Phone, ID: u.ID}, nil
}

// translate keeps domain errors as they are and hides everything else behind
// an internal error.
func translate(err error, msg string) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
