package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	jwttoken "respass/internal/jwt_token"
	"respass/internal/notify"
	"respass/internal/parcel/models"
	"respass/internal/platform/metrics"
	dErrors "respass/pkg/domain-errors"
	"respass/pkg/requestcontext"
	"respass/pkg/tabular"
)

type Store interface {
	InsertInventory(ctx context.Context, entries []models.InventoryEntry) ([]int64, error)
	MatchResidents(ctx context.Context, recipients []models.Recipient) ([]models.ResidentMatch, error)
	FallbackResidents(ctx context.Context, units []models.UnitKey) ([]models.ResidentMatch, error)
	MarkCollected(ctx context.Context, ids []int64, entry models.LogEntry) (int64, error)
	QueryByUnit(ctx context.Context, building, unit string) (*tabular.Frame, error)
}

// StoreTx provides the transactional boundary for intake and collection.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

type Notifier interface {
	Trigger(ctx context.Context, t notify.Trigger) error
}

type Verifier interface {
	Verify(tokenString string) (*jwttoken.Claims, error)
}

// Workflows names the notification workflows used by intake.
type Workflows struct {
	ParcelArrived string
	NoMatch       string
}

const notifyConcurrency = 4

var (
	ErrNoPayload      = dErrors.New(dErrors.CodeBadRequest, "No Payload")
	ErrNothingUpdated = dErrors.New(dErrors.CodeBadRequest, "No items updated")
)

var tracer = otel.Tracer("respass/parcel")

// Service records parcel intake, notifies owners and confirms collection.
type Service struct {
	store     Store
	tx        StoreTx
	notifier  Notifier
	verifier  Verifier
	workflows Workflows
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, tx StoreTx, notifier Notifier, verifier Verifier, workflows Workflows, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		tx:        tx,
		notifier:  notifier,
		verifier:  verifier,
		workflows: workflows,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// notifyPlan is the per-call notify list.
type notifyPlan struct {
	matched  map[int64][]models.IntakeItem
	fallback map[int64]*fallbackTarget
}

type fallbackTarget struct {
	unit  models.UnitKey
	names []string
}

// Intake records every item and notifies owners. Owners are found by exact
// (name, building, unit) match; for recipients nobody matches, one resident of
// the same unit is told instead. Inserts and triggers share one transaction so
// a failed trigger leaves no rows behind. Intake is not idempotent.
func (s *Service) Intake(ctx context.Context, items []models.IntakeItem, staffID string) (*models.IntakeResult, error) {
	ctx, span := tracer.Start(ctx, "parcel.intake", trace.WithAttributes(attribute.Int("parcel.items", len(items))))
	defer span.End()

	if len(items) == 0 {
		return nil, ErrNoPayload
	}
	start := time.Now()
	now := requestcontext.Now(ctx)

	entries := make([]models.InventoryEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, models.InventoryEntry{
			Type:      item.Type,
			Building:  item.Building,
			Unit:      item.Unit,
			OwnerName: item.RecipientName,
			Log:       []models.LogEntry{{By: staffID, To: item.DropLocation, TS: now.Unix()}},
			Note:      item.Note,
			Receiver:  staffID,
			Received:  now,
		})
	}

	result := &models.IntakeResult{Notified: []int64{}, NotMatched: []int64{}}
	err := s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		if _, err := store.InsertInventory(ctx, entries); err != nil {
			return err
		}
		plan, err := s.plan(ctx, store, items)
		if err != nil {
			return err
		}
		if err := s.dispatch(ctx, plan); err != nil {
			return err
		}
		result.Notified = sortedKeys(plan.matched)
		result.NotMatched = sortedKeys(plan.fallback)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "intake failed")
		s.logger.ErrorContext(ctx, "failed to record inventory",
			"request_id", requestcontext.RequestID(ctx),
			"staff_id", staffID,
			"items", len(items),
			"error", err,
		)
		code := dErrors.CodeBadRequest
		if dErrors.HasCode(err, dErrors.CodeTimeout) {
			code = dErrors.CodeTimeout
		}
		// The cause was logged above; the message alone carries it to the client.
		return nil, dErrors.New(code, "failed to record inventory: "+err.Error())
	}

	s.metrics.ObserveIntake(len(entries), start)
	span.SetAttributes(
		attribute.Int("parcel.notified", len(result.Notified)),
		attribute.Int("parcel.not_matched", len(result.NotMatched)),
	)
	s.logger.InfoContext(ctx, "inventory recorded",
		"request_id", requestcontext.RequestID(ctx),
		"staff_id", staffID,
		"items", len(items),
		"notified", result.Notified,
		"not_matched", result.NotMatched,
	)
	return result, nil
}

func (s *Service) plan(ctx context.Context, store Store, items []models.IntakeItem) (*notifyPlan, error) {
	recipients := distinctRecipients(items)
	matches, err := store.MatchResidents(ctx, recipients)
	if err != nil {
		return nil, err
	}

	plan := &notifyPlan{
		matched:  make(map[int64][]models.IntakeItem),
		fallback: make(map[int64]*fallbackTarget),
	}
	matchedRecipients := make(map[models.Recipient][]int64)
	for _, m := range matches {
		r := models.Recipient{Name: m.Name, Building: m.Building, Unit: m.Unit}
		matchedRecipients[r] = append(matchedRecipients[r], m.ID)
	}
	for _, item := range items {
		for _, id := range matchedRecipients[item.Recipient()] {
			plan.matched[id] = append(plan.matched[id], item)
		}
	}

	unmatchedNames := make(map[models.UnitKey][]string)
	var units []models.UnitKey
	for _, r := range recipients {
		if _, ok := matchedRecipients[r]; ok {
			continue
		}
		key := r.UnitKey()
		if _, seen := unmatchedNames[key]; !seen {
			units = append(units, key)
		}
		unmatchedNames[key] = append(unmatchedNames[key], r.Name)
	}
	if len(units) == 0 {
		return plan, nil
	}

	fallbacks, err := store.FallbackResidents(ctx, units)
	if err != nil {
		return nil, err
	}
	covered := make(map[models.UnitKey]bool, len(fallbacks))
	for _, f := range fallbacks {
		key := models.UnitKey{Building: f.Building, Unit: f.Unit}
		covered[key] = true
		target, ok := plan.fallback[f.ID]
		if !ok {
			target = &fallbackTarget{unit: key}
			plan.fallback[f.ID] = target
		}
		target.names = append(target.names, unmatchedNames[key]...)
	}
	for _, u := range units {
		if !covered[u] {
			s.metrics.IncrementUnitsWithoutResidents()
			s.logger.WarnContext(ctx, "no resident to notify for unit",
				"request_id", requestcontext.RequestID(ctx),
				"building", u.Building,
				"unit", u.Unit,
				"names", unmatchedNames[u],
			)
		}
	}
	return plan, nil
}

// dispatch fires every trigger and waits for all of them.
func (s *Service) dispatch(ctx context.Context, plan *notifyPlan) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(notifyConcurrency)

	for _, id := range sortedKeys(plan.matched) {
		id := id
		items := plan.matched[id]
		g.Go(func() error {
			return s.trigger(gctx, notify.Trigger{
				Workflow:   s.workflows.ParcelArrived,
				Recipients: []string{strconv.FormatInt(id, 10)},
				Data:       arrivedData(items),
			})
		})
	}
	for _, id := range sortedKeys(plan.fallback) {
		id := id
		target := plan.fallback[id]
		g.Go(func() error {
			return s.trigger(gctx, notify.Trigger{
				Workflow:   s.workflows.NoMatch,
				Recipients: []string{strconv.FormatInt(id, 10)},
				Data: map[string]any{
					"names":    target.names,
					"building": target.unit.Building,
					"unit":     target.unit.Unit,
				},
			})
		})
	}
	return g.Wait()
}

func (s *Service) trigger(ctx context.Context, t notify.Trigger) error {
	err := s.notifier.Trigger(ctx, t)
	s.metrics.IncrementNotification(t.Workflow, err)
	if err != nil {
		return fmt.Errorf("trigger %s for %v: %w", t.Workflow, t.Recipients, err)
	}
	return nil
}

func arrivedData(items []models.IntakeItem) map[string]any {
	parcels := make([]map[string]string, 0, len(items))
	for _, item := range items {
		parcels = append(parcels, map[string]string{
			"type":     item.Type,
			"location": item.DropLocation,
			"note":     item.Note,
		})
	}
	return map[string]any{"count": len(items), "parcels": parcels}
}

// ConfirmCollection marks awaiting entries collected. A recipient token that
// verifies at any role labels the collection with its subject.
func (s *Service) ConfirmCollection(ctx context.Context, ids []int64, staffID, recipientJWT string) (int64, error) {
	ctx, span := tracer.Start(ctx, "parcel.confirm_collection", trace.WithAttributes(attribute.Int("parcel.ids", len(ids))))
	defer span.End()

	subject := ""
	if recipientJWT != "" {
		claims, err := s.verifier.Verify(recipientJWT)
		if err != nil {
			s.logger.InfoContext(ctx, "recipient token rejected",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		} else {
			subject = claims.Subject
		}
	}
	entry := models.LogEntry{
		By: staffID,
		To: models.CollectionLabel(subject),
		TS: requestcontext.Now(ctx).Unix(),
	}

	if len(ids) == 0 {
		return 0, ErrNothingUpdated
	}
	var updated int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		n, err := store.MarkCollected(ctx, ids, entry)
		updated = n
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "collection failed")
		if dErrors.HasCode(err, dErrors.CodeTimeout) {
			return 0, err
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to confirm collection")
	}
	if updated == 0 {
		return 0, ErrNothingUpdated
	}

	s.metrics.AddItemsCollected(int(updated))
	s.logger.InfoContext(ctx, "items collected",
		"request_id", requestcontext.RequestID(ctx),
		"staff_id", staffID,
		"count", updated,
		"label", entry.To,
	)
	return updated, nil
}

// QueryInventory lists a unit's inventory.
func (s *Service) QueryInventory(ctx context.Context, building, unit string) (*tabular.Frame, error) {
	frame, err := s.store.QueryByUnit(ctx, building, unit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to query inventory")
	}
	return frame, nil
}

func distinctRecipients(items []models.IntakeItem) []models.Recipient {
	seen := make(map[models.Recipient]bool, len(items))
	out := make([]models.Recipient, 0, len(items))
	for _, item := range items {
		r := item.Recipient()
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
