package store

import (
	"context"
	"fmt"

	"github.com/roach88/sqlcond/cond"
	"github.com/roach88/sqlcond/internal/querysql"
)

// QueryRecord is one executed condition from the query log.
type QueryRecord struct {
	Seq      int64
	Table    string
	Template string
	Args     []any
	Matched  int
}

// Select returns the ids of the rows in table matching c, in ascending id
// order. The zero Condition matches every row.
//
// Each successful call is appended to the query log.
func (s *Store) Select(ctx context.Context, table string, c cond.Condition) ([]int64, error) {
	query, params, err := s.compiler.CompileSelect(querysql.Select{
		From:  table,
		Where: c,
	})
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}

	s.logger.Debug("executing select", "sql", query, "args", params)

	ids, err := s.queryIDs(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}

	if err := s.logQuery(ctx, table, c, len(ids)); err != nil {
		return nil, err
	}

	s.logger.Debug("select finished", "table", table, "matched", len(ids))
	return ids, nil
}

// queryIDs runs a single-column id query.
// Rows are closed before returning; the store holds a single connection.
func (s *Store) queryIDs(ctx context.Context, query string, params []any) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return ids, nil
}

func (s *Store) logQuery(ctx context.Context, table string, c cond.Condition, matched int) error {
	argsJSON, err := marshalArgs(c.Args)
	if err != nil {
		return fmt.Errorf("log query: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO query_log (table_name, template, args, matched)
		VALUES (?, ?, ?, ?)
	`, table, c.Template, argsJSON, matched)
	if err != nil {
		return fmt.Errorf("log query: %w", err)
	}
	return nil
}

// QueryLog returns every logged query in execution order.
//
// Query includes: ORDER BY seq ASC
func (s *Store) QueryLog(ctx context.Context) ([]QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, table_name, template, args, matched
		FROM query_log
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read query log: %w", err)
	}
	defer rows.Close()

	var records []QueryRecord
	for rows.Next() {
		var rec QueryRecord
		var argsJSON string
		if err := rows.Scan(&rec.Seq, &rec.Table, &rec.Template, &argsJSON, &rec.Matched); err != nil {
			return nil, fmt.Errorf("scan query log: %w", err)
		}
		rec.Args, err = unmarshalArgs(argsJSON)
		if err != nil {
			return nil, fmt.Errorf("query log seq %d: %w", rec.Seq, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query log: %w", err)
	}
	return records, nil
}
