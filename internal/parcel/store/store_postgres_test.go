package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"

	"respass/internal/parcel/models"
)

type PostgresStoreSuite struct {
	suite.Suite
	mock  pgxmock.PgxPoolIface
	store *Postgres
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mock = mock
	s.store = NewPostgres(mock)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func (s *PostgresStoreSuite) TestInsertInventoryBatchesRows() {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	entries := []models.InventoryEntry{
		{Type: "box", Building: "A", Unit: "101", OwnerName: "Jane Doe", Note: "fragile", Receiver: "20", Received: now,
			Log: []models.LogEntry{{By: "20", To: "shelf 3", TS: now.Unix()}}},
		{Type: "envelope", Building: "B", Unit: "7", OwnerName: "John Smith", Receiver: "20", Received: now,
			Log: []models.LogEntry{{By: "20", To: "mailroom", TS: now.Unix()}}},
	}

	s.mock.ExpectQuery(regexp.QuoteMeta(insertInventorySQL)).
		WithArgs(
			[]string{"box", "envelope"},
			[]string{"A", "B"},
			[]string{"101", "7"},
			[]string{"Jane Doe", "John Smith"},
			[]string{
				`[{"by":"20","to":"shelf 3","ts":1772357400}]`,
				`[{"by":"20","to":"mailroom","ts":1772357400}]`,
			},
			[]string{"fragile", ""},
			"20",
			now,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)).AddRow(int64(6)))

	ids, err := s.store.InsertInventory(s.ctx, entries)
	s.Require().NoError(err)
	s.Equal([]int64{5, 6}, ids)
}

func (s *PostgresStoreSuite) TestInsertInventoryEmptyIsNoop() {
	ids, err := s.store.InsertInventory(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(ids)
}

func (s *PostgresStoreSuite) TestMatchResidents() {
	s.mock.ExpectQuery(regexp.QuoteMeta(matchResidentsSQL)).
		WithArgs([]string{"Jane Doe", "John Smith"}, []string{"A", "B"}, []string{"101", "7"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "bld", "unit"}).AddRow(int64(1), "Jane Doe", "A", "101"))

	matches, err := s.store.MatchResidents(s.ctx, []models.Recipient{
		{Name: "Jane Doe", Building: "A", Unit: "101"},
		{Name: "John Smith", Building: "B", Unit: "7"},
	})
	s.Require().NoError(err)
	s.Equal([]models.ResidentMatch{{ID: 1, Name: "Jane Doe", Building: "A", Unit: "101"}}, matches)
}

func (s *PostgresStoreSuite) TestFallbackResidents() {
	s.mock.ExpectQuery(regexp.QuoteMeta(fallbackResidentsSQL)).
		WithArgs([]string{"B"}, []string{"7"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "bld", "unit"}).AddRow(int64(3), "Ann Lee", "B", "7"))

	matches, err := s.store.FallbackResidents(s.ctx, []models.UnitKey{{Building: "B", Unit: "7"}})
	s.Require().NoError(err)
	s.Equal([]models.ResidentMatch{{ID: 3, Name: "Ann Lee", Building: "B", Unit: "7"}}, matches)
}

func (s *PostgresStoreSuite) TestMarkCollected() {
	s.mock.ExpectExec(regexp.QuoteMeta(markCollectedSQL)).
		WithArgs([]int64{5, 6}, `{"by":"20","to":"unverified collection","ts":1772357400}`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := s.store.MarkCollected(s.ctx, []int64{5, 6}, models.LogEntry{By: "20", To: "unverified collection", TS: 1772357400})
	s.Require().NoError(err)
	s.Equal(int64(2), n)
}

func (s *PostgresStoreSuite) TestMarkCollectedError() {
	s.mock.ExpectExec(regexp.QuoteMeta(markCollectedSQL)).
		WithArgs([]int64{999}, pgxmock.AnyArg()).
		WillReturnError(errors.New("conn reset"))

	_, err := s.store.MarkCollected(s.ctx, []int64{999}, models.LogEntry{})
	s.ErrorContains(err, "mark collected: conn reset")
}

func (s *PostgresStoreSuite) TestQueryByUnit() {
	s.mock.ExpectQuery(regexp.QuoteMeta(queryByUnitSQL)).
		WithArgs("a", "101").
		WillReturnRows(pgxmock.NewRows([]string{"type", "owner_bld", "owner_unit", "owner_name", "note", "status", "log", "id"}).
			AddRow("box", "A", "101", "Jane Doe", "", "awaiting", []any{map[string]any{"by": "20"}}, int64(5)))

	frame, err := s.store.QueryByUnit(s.ctx, "a", "101")
	s.Require().NoError(err)
	s.Equal(1, frame.Len())
	s.Equal("id", frame.Columns[7])
	s.Equal(int64(5), frame.Data[0][7])
}
