package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlcond/internal/filterir"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool // treat warnings as failures
}

// FilterWarning is one validation warning on a named filter.
type FilterWarning struct {
	Filter  string `json:"filter"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool            `json:"valid"`
	Filters  int             `json:"filters"`
	Warnings []FilterWarning `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <filters-dir>",
		Short: "Check filters for likely mistakes",
		Long: `Load the CUE filters and report likely mistakes without compiling them.

Warnings cover invalid column names, unknown ops, empty groups, membership
ops given a scalar, strict ops given an absent value, and find_ip given
something that is not an IPv4 literal. Warnings do not fail the command
unless --strict is set.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat warnings as failures")

	return cmd
}

func runValidate(opts *ValidateOptions, filtersDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loadResult, loadErrors := LoadFilters(filtersDir, LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputValidateError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	// Filters that do not parse are validation failures (exit code 1)
	if len(loadErrors) > 0 {
		_ = outputCompileErrors(formatter, loadErrors)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(loadErrors)))
	}

	logger := formatter.Logger()
	logger.Debug("filters loaded", "dir", filtersDir, "files", loadResult.FileCount)

	result := ValidationResult{Valid: true, Filters: len(loadResult.Filters)}
	for _, f := range loadResult.Filters {
		vr := filterir.Validate(f.Root)
		logger.Debug("filter validated", "filter", f.Name, "warnings", len(vr.Warnings))
		for _, w := range vr.Warnings {
			result.Warnings = append(result.Warnings, FilterWarning{Filter: f.Name, Message: w})
		}
	}
	if opts.Strict && len(result.Warnings) > 0 {
		result.Valid = false
	}

	return outputValidateResult(formatter, result)
}

// outputValidateResult prints warnings, failing only when the result is invalid.
func outputValidateResult(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		if result.Valid {
			return formatter.Success(result)
		}
		if err := formatter.Encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeGeneric,
				Message: fmt.Sprintf("%d warning(s) in strict mode", len(result.Warnings)),
			},
		}); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d warning(s)", len(result.Warnings)))
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "⚠ %s: %s\n", w.Filter, w.Message)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(formatter.Writer)
	}

	if !result.Valid {
		fmt.Fprintf(formatter.Writer, "✗ Validation failed: %d warning(s) in strict mode\n", len(result.Warnings))
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d warning(s)", len(result.Warnings)))
	}

	if len(result.Warnings) == 0 {
		fmt.Fprintf(formatter.Writer, "✓ All %d filter(s) valid\n", result.Filters)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✓ %d filter(s) valid with %d warning(s)\n", result.Filters, len(result.Warnings))
	return nil
}

// outputValidateError outputs a single validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	// Load errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
