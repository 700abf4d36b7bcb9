package tabular

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameJSON(t *testing.T) {
	f := New("name", "bld", "unit", "id")
	require.NoError(t, f.Append("Jane Doe", "A", "101", int64(1)))
	require.NoError(t, f.Append("John Roe", "B", "7", int64(2)))
	assert.Error(t, f.Append("short"))

	raw, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"columns": ["name","bld","unit","id"],
		"index": [0,1],
		"data": [["Jane Doe","A","101",1],["John Roe","B","7",2]]
	}`, string(raw))
}

func TestEmptyFrameEncodesEmptyArrays(t *testing.T) {
	raw, err := json.Marshal(New("id"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["id"],"index":[],"data":[]}`, string(raw))
}

func TestFromRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT name, id FROM identity").
		WillReturnRows(pgxmock.NewRows([]string{"name", "id"}).
			AddRow("Jane Doe", int64(1)).
			AddRow("John Smith", int64(2)))

	rows, err := mock.Query(context.Background(), "SELECT name, id FROM identity")
	require.NoError(t, err)

	f, err := FromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, f.Columns)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []any{"John Smith", int64(2)}, f.Data[1])
}
