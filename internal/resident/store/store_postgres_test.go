package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"

	"respass/internal/resident/models"
	"respass/pkg/domain"
	"respass/pkg/platform/sentinel"
)

type ResidentStoreSuite struct {
	suite.Suite
	mock  pgxmock.PgxPoolIface
	store *Postgres
	ctx   context.Context
}

func TestResidentStoreSuite(t *testing.T) {
	suite.Run(t, new(ResidentStoreSuite))
}

func (s *ResidentStoreSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mock = mock
	s.store = NewPostgres(mock)
	s.ctx = context.Background()
}

func (s *ResidentStoreSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func (s *ResidentStoreSuite) TestInsertReturnsID() {
	s.mock.ExpectQuery(regexp.QuoteMeta(insertResidentSQL)).
		WithArgs("Jane Doe", "A", "101", models.RoleResident).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := s.store.Insert(s.ctx, models.Resident{Name: "Jane Doe", Building: "A", Unit: "101", Role: models.RoleResident})
	s.Require().NoError(err)
	s.Equal(domain.ResidentID(42), id)
}

func (s *ResidentStoreSuite) TestUpdateUnknownResident() {
	s.mock.ExpectExec(regexp.QuoteMeta(updateResidentSQL)).
		WithArgs(int64(7), "Jane Doe", "A", "102").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.store.Update(s.ctx, models.Resident{ID: 7, Name: "Jane Doe", Building: "A", Unit: "102"})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ResidentStoreSuite) TestDelete() {
	s.Run("existing", func() {
		s.mock.ExpectExec(regexp.QuoteMeta(deleteResidentSQL)).
			WithArgs(int64(42)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		s.NoError(s.store.Delete(s.ctx, 42))
	})

	s.Run("unknown", func() {
		s.mock.ExpectExec(regexp.QuoteMeta(deleteResidentSQL)).
			WithArgs(int64(43)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		s.ErrorIs(s.store.Delete(s.ctx, 43), sentinel.ErrNotFound)
	})

	s.Run("driver error", func() {
		s.mock.ExpectExec(regexp.QuoteMeta(deleteResidentSQL)).
			WithArgs(int64(44)).
			WillReturnError(errors.New("connection reset"))
		err := s.store.Delete(s.ctx, 44)
		s.ErrorContains(err, "delete resident")
		s.NotErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *ResidentStoreSuite) TestFindByID() {
	s.mock.ExpectQuery(regexp.QuoteMeta(findResidentSQL)).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "bld", "unit", "role"}).
			AddRow(int64(42), "Jane Doe", "A", "101", "res"))

	r, err := s.store.FindByID(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(&models.Resident{ID: 42, Name: "Jane Doe", Building: "A", Unit: "101", Role: "res"}, r)

	s.mock.ExpectQuery(regexp.QuoteMeta(findResidentSQL)).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)
	_, err = s.store.FindByID(s.ctx, 9)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ResidentStoreSuite) TestListAll() {
	s.mock.ExpectQuery(regexp.QuoteMeta(listResidentsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"name", "bld", "unit", "id"}).
			AddRow("Jane Doe", "A", "101", int64(1)).
			AddRow("John Smith", "B", "7", int64(2)))

	frame, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"name", "bld", "unit", "id"}, frame.Columns)
	s.Equal([]int{0, 1}, frame.Index)
	s.Equal([]any{"John Smith", "B", "7", int64(2)}, frame.Data[1])
}

func (s *ResidentStoreSuite) TestQueryBuildsQuotedPredicates() {
	filters := []models.Filter{{Column: "bld", Value: "a"}, {Column: "unit", Value: "101"}}
	want := `SELECT name, bld, unit, id, role FROM identity WHERE lower("bld"::text) = lower($1) AND lower("unit"::text) = lower($2) ORDER BY id`

	s.mock.ExpectQuery(regexp.QuoteMeta(want)).
		WithArgs("a", "101").
		WillReturnRows(pgxmock.NewRows([]string{"name", "bld", "unit", "id", "role"}).
			AddRow("Jane Doe", "A", "101", int64(1), "res"))

	frame, err := s.store.Query(s.ctx, filters)
	s.Require().NoError(err)
	s.Equal(1, frame.Len())
}

func (s *ResidentStoreSuite) TestQueryWithoutFilters() {
	query, args := buildQuery(nil)
	s.Equal(queryResidentsBase+" ORDER BY id", query)
	s.Empty(args)
}
