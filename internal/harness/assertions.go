package harness

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/sqlcond/cond"
	"github.com/roach88/sqlcond/internal/ir"
)

// AssertionError is returned when an expectation fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Case     string // Case name
	Field    string // Expectation that failed, e.g. "template"
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: case %q: %s\n", e.Case, e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// checkCase compares an outcome with the case's expectations.
func checkCase(c *Case, out caseOutcome) []error {
	e := c.Expect
	fail := func(field, expected, actual string) error {
		return &AssertionError{Case: c.Name, Field: field, Expected: expected, Actual: actual}
	}

	if e.Error != "" {
		if out.err == nil {
			return []error{fail("error", e.Error, "no error, condition "+describeOutcome(out))}
		}
		if !errorMatches(out.err, e.Error) {
			return []error{fail("error", e.Error, out.Error)}
		}
		return nil
	}
	if out.err != nil {
		return []error{fail("error", "no error", out.Error)}
	}

	var errs []error
	if e.Absent != nil && *e.Absent != out.Absent {
		errs = append(errs, fail("absent", fmt.Sprint(*e.Absent), describeOutcome(out)))
	}
	if e.Template != nil && *e.Template != out.Template {
		errs = append(errs, fail("template", fmt.Sprintf("%q", *e.Template), fmt.Sprintf("%q", out.Template)))
	}
	if e.Args != nil {
		expected, actual := canonicalList(e.Args), canonicalList(out.Args)
		if !slices.Equal(expected, actual) {
			errs = append(errs, fail("args", formatList(expected), formatList(actual)))
		}
	}
	if e.ArgsUnordered != nil {
		expected, actual := canonicalList(e.ArgsUnordered), canonicalList(out.Args)
		slices.Sort(expected)
		slices.Sort(actual)
		if !slices.Equal(expected, actual) {
			errs = append(errs, fail("args_unordered", formatList(expected), formatList(actual)))
		}
	}
	if e.IDs != nil && !slices.Equal(e.IDs, out.IDs) {
		errs = append(errs, fail("ids", fmt.Sprint(e.IDs), fmt.Sprint(out.IDs)))
	}
	return errs
}

// errorMatches reports whether err satisfies an Expect.Error value.
func errorMatches(err error, want string) bool {
	if want == ErrorInvalidArgument {
		return errors.Is(err, cond.ErrInvalidArgument)
	}
	return strings.Contains(err.Error(), want)
}

// canonicalList renders each value as canonical JSON, so YAML's int 7
// equals a bound int64(7).
func canonicalList(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		data, err := ir.MarshalCanonical(v)
		if err != nil {
			out[i] = fmt.Sprintf("<%T: %v>", v, err)
			continue
		}
		out[i] = string(data)
	}
	return out
}

func formatList(values []string) string {
	return "[" + strings.Join(values, ",") + "]"
}

func describeOutcome(out caseOutcome) string {
	if out.Absent {
		return "absent"
	}
	return fmt.Sprintf("%q %s", out.Template, formatList(canonicalList(out.Args)))
}
