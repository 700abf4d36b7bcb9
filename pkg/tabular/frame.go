// Package tabular renders query results in the split-orient table layout the
// staff front end consumes: column names, a positional row index and row data.
package tabular

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Frame is a JSON-serialisable result table.
type Frame struct {
	Columns []string `json:"columns"`
	Index   []int    `json:"index"`
	Data    [][]any  `json:"data"`
}

// New returns an empty frame with the given columns.
func New(columns ...string) *Frame {
	return &Frame{Columns: columns, Index: []int{}, Data: [][]any{}}
}

// Append adds one row. The row length must match the column count.
func (f *Frame) Append(row ...any) error {
	if len(row) != len(f.Columns) {
		return fmt.Errorf("row has %d values, frame has %d columns", len(row), len(f.Columns))
	}
	f.Index = append(f.Index, len(f.Data))
	f.Data = append(f.Data, row)
	return nil
}

// Len is the number of rows.
func (f *Frame) Len() int { return len(f.Data) }

// FromRows drains rows into a frame named after the result field descriptions.
func FromRows(rows pgx.Rows) (*Frame, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}
	frame := New(columns...)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if err := frame.Append(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return frame, nil
}
