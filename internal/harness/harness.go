package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/sqlcond/internal/querysql"
	"github.com/roach88/sqlcond/internal/store"
)

// Harness runs the cases of a scenario.
// It compiles each case and, when the scenario seeds rows, runs the
// resulting condition against them.
type Harness struct {
	store    *store.Store // nil when the scenario has no rows
	compiler *querysql.SQLCompiler
	logger   *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and insert the seed rows
// 2. Compile each case to a condition
// 3. Select matching row ids
// 4. Compare against the case's expectations
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext is Run with a context and a logger. A nil logger discards.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	}

	h := &Harness{
		compiler: querysql.NewSQLCompiler(),
		logger:   logger,
	}

	if len(scenario.Rows) > 0 {
		st, err := store.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
		st.SetLogger(logger)

		if _, err := st.InsertAll(ctx, store.CustomersTable, scenario.Rows); err != nil {
			return nil, fmt.Errorf("failed to seed rows: %w", err)
		}
		h.store = st
	}

	result := NewResult()
	for i := range scenario.Cases {
		c := &scenario.Cases[i]
		cr, err := h.runCase(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
		result.AddCase(cr.CaseResult)
		for _, failure := range checkCase(c, cr) {
			result.AddError(failure.Error())
		}
	}

	h.logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"cases", len(scenario.Cases),
		"pass", result.Pass)

	return result, nil
}

// caseOutcome carries the compile error alongside the recorded result so
// assertions can use errors.Is.
type caseOutcome struct {
	CaseResult
	err error
}

// runCase compiles one case and selects its matching rows.
// Compile errors are outcomes; only harness failures are returned.
func (h *Harness) runCase(ctx context.Context, c *Case) (caseOutcome, error) {
	out := caseOutcome{CaseResult: CaseResult{Name: c.Name}}

	node, err := c.node()
	if err != nil {
		return out, err
	}

	condition, err := h.compiler.Compile(node)
	if err != nil {
		h.logger.Debug("case rejected", "case", c.Name, "error", err)
		out.err = err
		out.Error = err.Error()
		return out, nil
	}

	out.Template = condition.Template
	out.Args = condition.Clone().Args
	out.Absent = condition.IsZero()

	h.logger.Debug("case compiled", "case", c.Name, "condition", condition.String())

	if h.store != nil {
		ids, err := h.store.Select(ctx, store.CustomersTable, condition)
		if err != nil {
			return out, err
		}
		out.IDs = ids
	}

	return out, nil
}
