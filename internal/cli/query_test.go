package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlcond/internal/store"
	"github.com/roach88/sqlcond/internal/testutil"
)

func TestQueryCommand_Text(t *testing.T) {
	tests := []struct {
		filter string
		want   string
	}{
		{"by_ip", "✓ 4 row(s) in customers: [1 2 3 4]\n"},
		{"a_names", "✓ 2 row(s) in customers: [1 5]\n"},
		{"optional", "✓ 6 row(s) in customers: [1 2 3 4 5 6]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			db := testutil.SeededDatabase(t)
			out, err := execute(t, NewQueryCommand(testOptions("text")), "--db", db, filtersDir, tt.filter)
			require.NoError(t, err)
			assert.Contains(t, out, tt.filter+": ")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestQueryCommand_JSON(t *testing.T) {
	db := testutil.SeededDatabase(t)

	out, err := execute(t, NewQueryCommand(testOptions("json")), "--db", db, filtersDir, "a_names")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, testTraceID, resp.TraceID)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a_names", data["name"])
	assert.Equal(t, "customers", data["table"])
	assert.Equal(t, "(name LIKE ?) AND (postcode IN (?,?))", data["template"])
	assert.Equal(t, []any{float64(1), float64(5)}, data["ids"])
}

func TestQueryCommand_RecordsQueryLog(t *testing.T) {
	db := testutil.SeededDatabase(t)

	_, err := execute(t, NewQueryCommand(testOptions("text")), "--db", db, filtersDir, "a_names")
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	log, err := st.QueryLog(context.Background())
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "customers", log[0].Table)
	assert.Equal(t, "(name LIKE ?) AND (postcode IN (?,?))", log[0].Template)
	assert.Equal(t, []any{"A%", "AB1", "AB2"}, log[0].Args)
	assert.Equal(t, 2, log[0].Matched)
}

func TestQueryCommand_Errors(t *testing.T) {
	t.Run("unknown filter", func(t *testing.T) {
		db := testutil.SeededDatabase(t)
		out, err := execute(t, NewQueryCommand(testOptions("text")), "--db", db, filtersDir, "nope")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, out, "Error ["+ErrCodeFilterNotFound+"]")
	})

	t.Run("invalid table", func(t *testing.T) {
		db := testutil.SeededDatabase(t)
		out, err := execute(t, NewQueryCommand(testOptions("text")), "--db", db, "--table", "no such", filtersDir, "by_ip")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, out, "Error ["+ErrCodeQueryFailed+"]")
		assert.Contains(t, out, "invalid table name")
	})

	t.Run("strict op rejects its value", func(t *testing.T) {
		db := testutil.SeededDatabase(t)
		dir := writeFilters(t, `filter: bad: {column: "id", op: "in", value: 7}`)
		out, err := execute(t, NewQueryCommand(testOptions("text")), "--db", db, dir, "bad")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Contains(t, out, "Error ["+ErrCodeInvalidArgument+"]")
	})

	t.Run("db flag required", func(t *testing.T) {
		_, err := execute(t, NewQueryCommand(testOptions("text")), filtersDir, "by_ip")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
	})
}
