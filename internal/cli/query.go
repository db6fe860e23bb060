package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlcond/cond"
	"github.com/roach88/sqlcond/internal/querysql"
	"github.com/roach88/sqlcond/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database string
	Table    string
}

// QueryResult holds the condition a filter compiled to and the rows it matched.
type QueryResult struct {
	ConditionResult
	Table string  `json:"table"`
	IDs   []int64 `json:"ids"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <filters-dir> <filter>",
		Short: "Run a filter against a SQLite database",
		Long: `Compile one named filter and select the matching row ids.

The database is created with the customers schema if it does not exist.
Every query is recorded in the database's query log.

Example:
  sqlcond query --db ./customers.db ./filters by_ip
  sqlcond query --db ./customers.db --format json ./filters by_ip`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Table, "table", store.CustomersTable, "table to select from")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runQuery(opts *QueryOptions, filtersDir, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := formatter.Logger()

	loadResult, loadErrors := LoadFilters(filtersDir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputQueryError(formatter, ExitCommandError, loadErr.Code, loadErr.Message)
		}
		return outputQueryError(formatter, ExitCommandError, ErrCodeGeneric, loadErrors[0].Error())
	}

	f, ok := loadResult.Lookup(name)
	if !ok {
		return outputQueryError(formatter, ExitCommandError, ErrCodeFilterNotFound,
			fmt.Sprintf("no filter named %q in %s", name, filtersDir))
	}

	c, err := querysql.NewSQLCompiler().Compile(f.Root)
	if err != nil {
		if errors.Is(err, cond.ErrInvalidArgument) {
			return outputQueryError(formatter, ExitFailure, ErrCodeInvalidArgument, err.Error())
		}
		return outputQueryError(formatter, ExitCommandError, ErrCodeFilterColumn, err.Error())
	}
	logger.Debug("filter compiled", "filter", name, "condition", c.String())

	logger.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return outputQueryError(formatter, ExitCommandError, ErrCodeQueryFailed, err.Error())
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()
	st.SetLogger(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ids, err := st.Select(ctx, opts.Table, c)
	if err != nil {
		return outputQueryError(formatter, ExitCommandError, ErrCodeQueryFailed, err.Error())
	}

	result := QueryResult{
		ConditionResult: newConditionResult(name, c),
		Table:           opts.Table,
		IDs:             ids,
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s: %s\n", name, c.String())
	fmt.Fprintf(formatter.Writer, "✓ %d row(s) in %s: %v\n", len(ids), opts.Table, ids)
	return nil
}

func outputQueryError(formatter *OutputFormatter, exitCode int, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}
