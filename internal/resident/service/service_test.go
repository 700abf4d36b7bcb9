package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"respass/internal/notify"
	"respass/internal/resident/models"
	"respass/internal/resident/service"
	"respass/internal/resident/service/mocks"
	"respass/pkg/domain"
	dErrors "respass/pkg/domain-errors"
	"respass/pkg/platform/sentinel"
	"respass/pkg/tabular"
	"respass/pkg/testutil"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Notifier

// inlineTx runs fn against the mock store and records whether it was rolled back.
type inlineTx struct {
	store      service.Store
	rolledBack bool
}

func (t *inlineTx) RunInTx(ctx context.Context, fn func(ctx context.Context, store service.Store) error) error {
	err := fn(ctx, t.store)
	t.rolledBack = err != nil
	return err
}

type fixture struct {
	svc      *service.Service
	store    *mocks.MockStore
	notifier *mocks.MockNotifier
	tx       *inlineTx
	ctx      context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		store:    mocks.NewMockStore(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		ctx:      context.Background(),
	}
	f.tx = &inlineTx{store: f.store}
	f.svc = service.New(f.store, f.tx, f.notifier, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func janeDoe() models.RegisterRequest {
	return models.RegisterRequest{Name: "Jane Doe", Building: "A", Unit: "101"}
}

func TestRegister(t *testing.T) {
	testutil.Given(t, "a resident without contact details", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Insert(gomock.Any(), models.Resident{
			Name: "Jane Doe", Building: "A", Unit: "101", Role: models.RoleResident,
		}).Return(domain.ResidentID(42), nil)

		testutil.Then(t, "the row is inserted and the provider is not called", func(t *testing.T) {
			id, err := f.svc.Register(f.ctx, janeDoe())
			require.NoError(t, err)
			assert.Equal(t, domain.ResidentID(42), id)
		})
	})

	testutil.Given(t, "a resident with email and a national phone number", func(t *testing.T) {
		f := newFixture(t)
		req := janeDoe()
		req.Email = "jane@example.com"
		req.Phone = "(212) 555-0199"
		f.store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(domain.ResidentID(42), nil)
		f.notifier.EXPECT().Identify(gomock.Any(), notify.User{
			ID: "42", Name: "Jane Doe", Email: "jane@example.com", Phone: "+12125550199",
		}).Return(nil)

		testutil.Then(t, "the provider learns the E.164 number", func(t *testing.T) {
			id, err := f.svc.Register(f.ctx, req)
			require.NoError(t, err)
			assert.Equal(t, domain.ResidentID(42), id)
		})
	})

	testutil.Given(t, "the provider rejects the contact", func(t *testing.T) {
		f := newFixture(t)
		req := janeDoe()
		req.Email = "jane@example.com"
		f.store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(domain.ResidentID(42), nil)
		f.notifier.EXPECT().Identify(gomock.Any(), gomock.Any()).Return(&notify.StatusError{Op: "identify", Status: 422})

		testutil.Then(t, "the insert is rolled back and an internal error returned", func(t *testing.T) {
			_, err := f.svc.Register(f.ctx, req)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
			assert.True(t, f.tx.rolledBack)
		})
	})

	testutil.Given(t, "an unparseable phone number", func(t *testing.T) {
		f := newFixture(t)
		req := janeDoe()
		req.Phone = "call me maybe"

		testutil.Then(t, "nothing is written", func(t *testing.T) {
			_, err := f.svc.Register(f.ctx, req)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	})
}

func TestUpdate(t *testing.T) {
	t.Run("unknown resident", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(sentinel.ErrNotFound)

		err := f.svc.Update(f.ctx, 7, janeDoe())
		assert.ErrorIs(t, err, service.ErrResidentNotFound)
	})

	t.Run("refreshes contact", func(t *testing.T) {
		f := newFixture(t)
		req := janeDoe()
		req.Email = "jane@example.com"
		f.store.EXPECT().Update(gomock.Any(), models.Resident{ID: 7, Name: "Jane Doe", Building: "A", Unit: "101"}).Return(nil)
		f.notifier.EXPECT().Identify(gomock.Any(), notify.User{ID: "7", Name: "Jane Doe", Email: "jane@example.com"}).Return(nil)

		require.NoError(t, f.svc.Update(f.ctx, 7, req))
	})
}

func TestDelete(t *testing.T) {
	testutil.Given(t, "an existing resident", func(t *testing.T) {
		testutil.When(t, "the provider deletion fails", func(t *testing.T) {
			f := newFixture(t)
			f.store.EXPECT().Delete(gomock.Any(), domain.ResidentID(42)).Return(nil)
			f.notifier.EXPECT().DeleteUser(gomock.Any(), "42").Return(errors.New("provider down"))

			testutil.Then(t, "the delete still succeeds", func(t *testing.T) {
				assert.NoError(t, f.svc.Delete(f.ctx, 42))
			})
		})
	})

	testutil.Given(t, "an unknown resident", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Delete(gomock.Any(), domain.ResidentID(9)).Return(sentinel.ErrNotFound)

		testutil.Then(t, "not found is reported and the provider is untouched", func(t *testing.T) {
			err := f.svc.Delete(f.ctx, 9)
			assert.ErrorIs(t, err, service.ErrResidentNotFound)
		})
	})
}

func TestContact(t *testing.T) {
	t.Run("known resident", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().FindByID(gomock.Any(), domain.ResidentID(42)).Return(&models.Resident{ID: 42}, nil)
		f.notifier.EXPECT().GetUser(gomock.Any(), "42").
			Return(&notify.User{ID: "42", Email: "jane@example.com", Phone: "+15550100199"}, nil)

		c, err := f.svc.Contact(f.ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, &models.Contact{Email: "jane@example.com", Phone: "+15550100199", ID: "42"}, c)
	})

	t.Run("no provider record", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().FindByID(gomock.Any(), domain.ResidentID(42)).Return(&models.Resident{ID: 42}, nil)
		f.notifier.EXPECT().GetUser(gomock.Any(), "42").Return(nil, sentinel.ErrNotFound)

		_, err := f.svc.Contact(f.ctx, 42)
		assert.ErrorIs(t, err, service.ErrNoContact)
	})

	t.Run("unknown resident", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().FindByID(gomock.Any(), domain.ResidentID(9)).Return(nil, sentinel.ErrNotFound)

		_, err := f.svc.Contact(f.ctx, 9)
		assert.ErrorIs(t, err, service.ErrResidentNotFound)
	})

	t.Run("backend without lookup", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().FindByID(gomock.Any(), domain.ResidentID(42)).Return(&models.Resident{ID: 42}, nil)
		f.notifier.EXPECT().GetUser(gomock.Any(), "42").Return(nil, sentinel.ErrUnsupported)

		_, err := f.svc.Contact(f.ctx, 42)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func TestListAndQuery(t *testing.T) {
	f := newFixture(t)
	frame := tabular.New("name", "bld", "unit", "id")
	f.store.EXPECT().ListAll(gomock.Any()).Return(frame, nil)
	got, err := f.svc.ListAll(f.ctx)
	require.NoError(t, err)
	assert.Same(t, frame, got)

	filters := []models.Filter{{Column: "bld", Value: "a"}}
	f.store.EXPECT().Query(gomock.Any(), filters).Return(nil, errors.New("syntax error"))
	_, err = f.svc.Query(f.ctx, filters)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
