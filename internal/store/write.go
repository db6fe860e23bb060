package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/sqlcond/internal/filterir"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Insert adds a row to table and returns its id.
//
// Columns are written in sorted order so the statement text is deterministic.
// Values are stored as given: nil becomes NULL and "" stays "".
func (s *Store) Insert(ctx context.Context, table string, row map[string]any) (int64, error) {
	return s.insert(ctx, s.db, table, row)
}

// InsertAll inserts rows in order inside one transaction and returns their ids.
func (s *Store) InsertAll(ctx context.Context, table string, rows []map[string]any) ([]int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(rows))
	for i, row := range rows {
		id, err := s.insert(ctx, tx, table, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return ids, nil
}

func (s *Store) insert(ctx context.Context, ex execer, table string, row map[string]any) (int64, error) {
	if !filterir.IsIdentifier(table) {
		return 0, fmt.Errorf("insert: invalid table name %q", table)
	}
	if len(row) == 0 {
		return 0, fmt.Errorf("insert into %s: empty row", table)
	}

	columns := make([]string, 0, len(row))
	for col := range row {
		if !filterir.IsIdentifier(col) {
			return 0, fmt.Errorf("insert into %s: invalid column name %q", table, col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	values := make([]any, len(columns))
	for i, col := range columns {
		v, err := rowValue(col, row[col])
		if err != nil {
			return 0, fmt.Errorf("insert into %s: %w", table, err)
		}
		values[i] = v
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "))

	res, err := ex.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}

	s.logger.Debug("row inserted", "table", table, "id", id)
	return id, nil
}
