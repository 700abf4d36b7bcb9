package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"respass/internal/parcel/models"
	"respass/internal/platform/postgres"
	"respass/pkg/tabular"
)

// Postgres runs parcel statements against a pool or a transaction.
type Postgres struct {
	db postgres.DBTX
}

func NewPostgres(db postgres.DBTX) *Postgres {
	return &Postgres{db: db}
}

const insertInventorySQL = `
INSERT INTO inventory (type, owner_bld, owner_unit, owner_name, log, note, status, receiver, received)
SELECT t.type, t.bld, t.unit, t.name, t.log::jsonb, t.note, 'awaiting', $7, $8
FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::text[])
    AS t(type, bld, unit, name, log, note)
RETURNING id`

// InsertInventory writes all entries in one statement. Every entry shares the
// receiver and received time of the first, which intake guarantees.
func (s *Postgres) InsertInventory(ctx context.Context, entries []models.InventoryEntry) ([]int64, error) {
	if len(entries) == 0 {
		return []int64{}, nil
	}
	n := len(entries)
	types := make([]string, 0, n)
	blds := make([]string, 0, n)
	units := make([]string, 0, n)
	names := make([]string, 0, n)
	logs := make([]string, 0, n)
	notes := make([]string, 0, n)
	for _, e := range entries {
		logJSON, err := json.Marshal(e.Log)
		if err != nil {
			return nil, fmt.Errorf("encode log: %w", err)
		}
		types = append(types, e.Type)
		blds = append(blds, e.Building)
		units = append(units, e.Unit)
		names = append(names, e.OwnerName)
		logs = append(logs, string(logJSON))
		notes = append(notes, e.Note)
	}

	rows, err := s.db.Query(ctx, insertInventorySQL,
		types, blds, units, names, logs, notes, entries[0].Receiver, entries[0].Received)
	if err != nil {
		return nil, fmt.Errorf("insert inventory: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("insert inventory: %w", err)
	}
	return ids, nil
}

const matchResidentsSQL = `
SELECT i.id, i.name, i.bld, i.unit
FROM identity i
JOIN unnest($1::text[], $2::text[], $3::text[]) AS r(name, bld, unit)
    ON i.name = r.name AND i.bld = r.bld AND i.unit = r.unit
ORDER BY i.id`

// MatchResidents returns residents whose (name, building, unit) equals one of
// the recipients exactly.
func (s *Postgres) MatchResidents(ctx context.Context, recipients []models.Recipient) ([]models.ResidentMatch, error) {
	if len(recipients) == 0 {
		return []models.ResidentMatch{}, nil
	}
	names := make([]string, 0, len(recipients))
	blds := make([]string, 0, len(recipients))
	units := make([]string, 0, len(recipients))
	for _, r := range recipients {
		names = append(names, r.Name)
		blds = append(blds, r.Building)
		units = append(units, r.Unit)
	}
	rows, err := s.db.Query(ctx, matchResidentsSQL, names, blds, units)
	if err != nil {
		return nil, fmt.Errorf("match residents: %w", err)
	}
	return collectMatches(rows, "match residents")
}

const fallbackResidentsSQL = `
SELECT DISTINCT ON (i.bld, i.unit) i.id, i.name, i.bld, i.unit
FROM identity i
JOIN unnest($1::text[], $2::text[]) AS u(bld, unit)
    ON i.bld = u.bld AND i.unit = u.unit
ORDER BY i.bld, i.unit, i.id`

// FallbackResidents picks the lowest-id resident of each unit. Units without
// residents are absent from the result.
func (s *Postgres) FallbackResidents(ctx context.Context, units []models.UnitKey) ([]models.ResidentMatch, error) {
	if len(units) == 0 {
		return []models.ResidentMatch{}, nil
	}
	blds := make([]string, 0, len(units))
	unitIDs := make([]string, 0, len(units))
	for _, u := range units {
		blds = append(blds, u.Building)
		unitIDs = append(unitIDs, u.Unit)
	}
	rows, err := s.db.Query(ctx, fallbackResidentsSQL, blds, unitIDs)
	if err != nil {
		return nil, fmt.Errorf("fallback residents: %w", err)
	}
	return collectMatches(rows, "fallback residents")
}

func collectMatches(rows pgx.Rows, op string) ([]models.ResidentMatch, error) {
	matches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ResidentMatch, error) {
		var m models.ResidentMatch
		err := row.Scan(&m.ID, &m.Name, &m.Building, &m.Unit)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return matches, nil
}

const markCollectedSQL = `
UPDATE inventory
SET status = 'collected', log = jsonb_build_array($2::text::jsonb) || log
WHERE id = ANY($1::bigint[]) AND status = 'awaiting'`

// MarkCollected moves awaiting entries to collected and prepends entry to
// their log. Entries already collected are left untouched.
func (s *Postgres) MarkCollected(ctx context.Context, ids []int64, entry models.LogEntry) (int64, error) {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return 0, fmt.Errorf("encode log entry: %w", err)
	}
	tag, err := s.db.Exec(ctx, markCollectedSQL, ids, string(entryJSON))
	if err != nil {
		return 0, fmt.Errorf("mark collected: %w", err)
	}
	return tag.RowsAffected(), nil
}

const queryByUnitSQL = `
SELECT type, owner_bld, owner_unit, owner_name, note, status, log, id
FROM inventory
WHERE lower(owner_bld) = lower($1) AND lower(owner_unit) = lower($2)
ORDER BY id`

// QueryByUnit lists a unit's inventory, matching building and unit
// case-insensitively.
func (s *Postgres) QueryByUnit(ctx context.Context, building, unit string) (*tabular.Frame, error) {
	rows, err := s.db.Query(ctx, queryByUnitSQL, building, unit)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	frame, err := tabular.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	return frame, nil
}
