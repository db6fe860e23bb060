package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlcond/cond"
	"github.com/roach88/sqlcond/internal/filterir"
	"github.com/roach88/sqlcond/internal/ir"
	"github.com/roach88/sqlcond/internal/querysql"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Null bool // pass an absent value
	JSON bool // decode each value as JSON
	List bool // treat a single value as a one-element list
}

// ConditionResult is the JSON form of a built or compiled condition.
type ConditionResult struct {
	Name     string `json:"name,omitempty"`
	Template string `json:"template"`
	Args     []any  `json:"args"`
	Absent   bool   `json:"absent"`
}

func newConditionResult(name string, c cond.Condition) ConditionResult {
	args := c.Clone().Args
	if args == nil {
		args = []any{}
	}
	return ConditionResult{
		Name:     name,
		Template: c.Template,
		Args:     args,
		Absent:   c.IsZero(),
	}
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <op> <column> [value...]",
		Short: "Build one condition",
		Long: `Build a single condition with the named builder.

One value is passed as a scalar; several values form a list. With --json
each value is decoded as JSON, so numbers, null and nested lists are
available. With --null the value is absent.

Ops: ` + strings.Join(opNames(), ", ") + `

Examples:
  sqlcond build find ip 192.0.2.123
  sqlcond build maybe_in postcode AB1 AB2
  sqlcond build --json in id 7 null 13
  sqlcond build --null ne postcode`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], args[1], args[2:], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Null, "null", false, "pass an absent value")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "decode each value as JSON")
	cmd.Flags().BoolVar(&opts.List, "list", false, "pass a single value as a one-element list")

	return cmd
}

func runBuild(opts *BuildOptions, op, column string, rawValues []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := formatter.Logger()

	if !filterir.Op(op).Valid() {
		return outputBuildError(formatter, ExitCommandError, ErrCodeUnknownOp,
			fmt.Sprintf("unknown op %q: must be one of %s", op, strings.Join(opNames(), ", ")))
	}

	value, err := buildValue(opts, rawValues)
	if err != nil {
		return outputBuildError(formatter, ExitCommandError, ErrCodeInvalidValue, err.Error())
	}

	logger.Debug("building condition", "op", op, "column", column, "value", ir.Native(value))

	c, err := querysql.NewSQLCompiler().Compile(filterir.Term{
		Column: column,
		Op:     filterir.Op(op),
		Value:  value,
	})
	if err != nil {
		if errors.Is(err, cond.ErrInvalidArgument) {
			return outputBuildError(formatter, ExitFailure, ErrCodeInvalidArgument, err.Error())
		}
		return outputBuildError(formatter, ExitCommandError, ErrCodeGeneric, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(newConditionResult("", c))
	}
	return formatter.Success(c.String())
}

// buildValue turns command-line values into the builder's input.
func buildValue(opts *BuildOptions, raw []string) (ir.Value, error) {
	if opts.Null {
		if len(raw) > 0 {
			return nil, fmt.Errorf("--null takes no values, got %d", len(raw))
		}
		return ir.Null{}, nil
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("a value is required (or --null)")
	}

	values := make(ir.Array, len(raw))
	for i, s := range raw {
		if !opts.JSON {
			values[i] = ir.String(s)
			continue
		}
		v, err := ir.UnmarshalValue([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("value %d: invalid JSON %q: %w", i+1, s, err)
		}
		values[i] = v
	}

	if len(values) == 1 && !opts.List {
		return values[0], nil
	}
	return values, nil
}

func opNames() []string {
	ops := filterir.Ops()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return names
}

// outputBuildError reports an error and returns it with its exit code.
func outputBuildError(formatter *OutputFormatter, exitCode int, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}
