package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"respass/internal/platform/postgres"
	"respass/internal/resident/models"
	"respass/pkg/domain"
	"respass/pkg/platform/sentinel"
	"respass/pkg/tabular"
)

// Postgres persists resident identities.
type Postgres struct {
	db postgres.DBTX
}

func NewPostgres(db postgres.DBTX) *Postgres {
	return &Postgres{db: db}
}

const insertResidentSQL = `
INSERT INTO identity (name, bld, unit, role)
VALUES ($1, $2, $3, $4)
RETURNING id`

func (s *Postgres) Insert(ctx context.Context, r models.Resident) (domain.ResidentID, error) {
	var id int64
	if err := s.db.QueryRow(ctx, insertResidentSQL, r.Name, r.Building, r.Unit, r.Role).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert resident: %w", err)
	}
	return domain.ResidentID(id), nil
}

const updateResidentSQL = `
UPDATE identity
SET name = $2, bld = $3, unit = $4
WHERE id = $1`

// Update rewrites the name and address of a resident. The role is kept.
func (s *Postgres) Update(ctx context.Context, r models.Resident) error {
	tag, err := s.db.Exec(ctx, updateResidentSQL, int64(r.ID), r.Name, r.Building, r.Unit)
	if err != nil {
		return fmt.Errorf("update resident: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const deleteResidentSQL = `DELETE FROM identity WHERE id = $1`

func (s *Postgres) Delete(ctx context.Context, id domain.ResidentID) error {
	tag, err := s.db.Exec(ctx, deleteResidentSQL, int64(id))
	if err != nil {
		return fmt.Errorf("delete resident: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const findResidentSQL = `SELECT id, name, bld, unit, role FROM identity WHERE id = $1`

func (s *Postgres) FindByID(ctx context.Context, id domain.ResidentID) (*models.Resident, error) {
	var (
		r   models.Resident
		rid int64
	)
	err := s.db.QueryRow(ctx, findResidentSQL, int64(id)).Scan(&rid, &r.Name, &r.Building, &r.Unit, &r.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find resident: %w", err)
	}
	r.ID = domain.ResidentID(rid)
	return &r, nil
}

const listResidentsSQL = `SELECT name, bld, unit, id FROM identity ORDER BY id`

func (s *Postgres) ListAll(ctx context.Context) (*tabular.Frame, error) {
	rows, err := s.db.Query(ctx, listResidentsSQL)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	frame, err := tabular.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	return frame, nil
}

const queryResidentsBase = `SELECT name, bld, unit, id, role FROM identity`

// Query lists residents matching every filter, comparing case-insensitively.
// Filter columns must come from models.QueryRequest, which whitelists them;
// values are always bound as parameters.
func (s *Postgres) Query(ctx context.Context, filters []models.Filter) (*tabular.Frame, error) {
	query, args := buildQuery(filters)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query residents: %w", err)
	}
	frame, err := tabular.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("query residents: %w", err)
	}
	return frame, nil
}

func buildQuery(filters []models.Filter) (string, []any) {
	var b strings.Builder
	b.WriteString(queryResidentsBase)
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		fmt.Fprintf(&b, "lower(%s::text) = lower($%d)", pq.QuoteIdentifier(f.Column), i+1)
		args = append(args, f.Value)
	}
	b.WriteString(" ORDER BY id")
	return b.String(), args
}
