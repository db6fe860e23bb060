package querysql

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/sqlcond/cond"
	"github.com/roach88/sqlcond/internal/filterir"
	"github.com/roach88/sqlcond/internal/ir"
)

// builder is the common shape of the cond constructors.
type builder func(column string, value any) (cond.Condition, error)

// relaxed adapts a constructor that cannot fail.
func relaxed(fn func(string, any) cond.Condition) builder {
	return func(column string, value any) (cond.Condition, error) {
		return fn(column, value), nil
	}
}

var builders = map[filterir.Op]builder{
	filterir.OpFind:      cond.Find,
	filterir.OpMaybeFind: relaxed(cond.MaybeFind),
	filterir.OpFindIP:    relaxed(cond.FindIP),
	filterir.OpEq:        relaxed(cond.Eq),
	filterir.OpMaybeEq:   relaxed(cond.MaybeEq),
	filterir.OpNe:        relaxed(cond.Ne),
	filterir.OpMaybeNe:   relaxed(cond.MaybeNe),
	filterir.OpLike:      relaxed(cond.Like),
	filterir.OpMaybeLike: relaxed(cond.MaybeLike),
	filterir.OpIn:        cond.In,
	filterir.OpMaybeIn:   relaxed(cond.MaybeIn),
}

// SQLCompiler compiles filter IR to parameterized SQL for SQLite.
//
// CRITICAL: All values are parameterized (never interpolated). Only column
// and table names that pass filterir.IsIdentifier reach the SQL text.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts a filter tree to a condition. An absent result (the zero
// Condition) means the filter has nothing to test.
func (c *SQLCompiler) Compile(n filterir.Node) (cond.Condition, error) {
	if n == nil {
		return cond.Condition{}, fmt.Errorf("cannot compile nil filter")
	}

	switch node := n.(type) {
	case filterir.Term:
		return c.compileTerm(node)
	case *filterir.Term:
		return c.compileTerm(*node)
	case filterir.All:
		return c.compileGroup(cond.OpAnd, node.Nodes)
	case *filterir.All:
		return c.compileGroup(cond.OpAnd, node.Nodes)
	case filterir.Any:
		return c.compileGroup(cond.OpOr, node.Nodes)
	case *filterir.Any:
		return c.compileGroup(cond.OpOr, node.Nodes)
	case filterir.Not:
		return c.compileNot(node)
	case *filterir.Not:
		return c.compileNot(*node)
	default:
		return cond.Condition{}, fmt.Errorf("unsupported filter node type: %T", n)
	}
}

// compileTerm dispatches a term to its cond builder.
func (c *SQLCompiler) compileTerm(t filterir.Term) (cond.Condition, error) {
	if !filterir.IsIdentifier(t.Column) {
		return cond.Condition{}, fmt.Errorf("invalid column name %q", t.Column)
	}

	op := t.EffectiveOp()
	build, ok := builders[op]
	if !ok {
		return cond.Condition{}, fmt.Errorf("unknown op %q", op)
	}

	var value ir.Value = ir.Null{}
	if t.Value != nil {
		value = t.Value
	}

	result, err := build(t.Column, value)
	if err != nil {
		return cond.Condition{}, fmt.Errorf("compile %s: %w", op, err)
	}
	return result, nil
}

func (c *SQLCompiler) compileGroup(conn cond.Connective, nodes []filterir.Node) (cond.Condition, error) {
	parts := make([]cond.Condition, 0, len(nodes))
	for _, n := range nodes {
		part, err := c.Compile(n)
		if err != nil {
			return cond.Condition{}, err
		}
		parts = append(parts, part)
	}
	return cond.Combine(conn, parts...), nil
}

func (c *SQLCompiler) compileNot(n filterir.Not) (cond.Condition, error) {
	inner, err := c.Compile(n.Node)
	if err != nil {
		return cond.Condition{}, err
	}
	return cond.Not(inner), nil
}

// Select describes a single-table query: SELECT <columns> FROM <from> WHERE <where>.
type Select struct {
	From    string         // Table name
	Columns []string       // Selected columns (empty = id)
	Where   cond.Condition // Zero = no WHERE clause
}

// CompileSelect renders q as a statement and its parameters.
//
// MANDATORY: Every statement ends in ORDER BY id so results are deterministic.
func (c *SQLCompiler) CompileSelect(q Select) (string, []any, error) {
	if !filterir.IsIdentifier(q.From) {
		return "", nil, fmt.Errorf("invalid table name %q", q.From)
	}

	columns := q.Columns
	if len(columns) == 0 {
		columns = []string{"id"}
	}
	for _, col := range columns {
		if !filterir.IsIdentifier(col) {
			return "", nil, fmt.Errorf("invalid column name %q", col)
		}
	}

	var whereClause string
	var params []any
	if !q.Where.IsZero() {
		if n := q.Where.Placeholders(); n != len(q.Where.Args) {
			return "", nil, fmt.Errorf("condition has %d placeholders but %d values", n, len(q.Where.Args))
		}
		whereClause = " WHERE " + q.Where.Template
		params = slices.Clone(q.Where.Args)
	}

	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s",
		strings.Join(columns, ", "),
		q.From,
		whereClause,
		stableOrderKey())

	return sql, params, nil
}

// stableOrderKey returns the ORDER BY clause body.
// COLLATE BINARY keeps text ordering identical across SQLite builds.
func stableOrderKey() string {
	return "id ASC COLLATE BINARY"
}
