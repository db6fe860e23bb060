package harness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/sqlcond/cond"
)

func ptr[T any](v T) *T { return &v }

func TestCheckCase_ArgsCompareCanonically(t *testing.T) {
	c := &Case{Name: "c", Expect: Expect{Args: []any{7, "x", 2.5, nil}}}
	out := caseOutcome{CaseResult: CaseResult{Args: []any{int64(7), "x", 2.5, nil}}}

	assert.Empty(t, checkCase(c, out))
}

func TestCheckCase_ArgsUnordered(t *testing.T) {
	c := &Case{Name: "c", Expect: Expect{ArgsUnordered: []any{"b", "a", 1}}}

	assert.Empty(t, checkCase(c, caseOutcome{CaseResult: CaseResult{Args: []any{int64(1), "a", "b"}}}))

	errs := checkCase(c, caseOutcome{CaseResult: CaseResult{Args: []any{"a", "b"}}})
	if assert.Len(t, errs, 1) {
		var ae *AssertionError
		assert.True(t, errors.As(errs[0], &ae))
		assert.Equal(t, "args_unordered", ae.Field)
	}
}

func TestCheckCase_ArgsOrderMatters(t *testing.T) {
	c := &Case{Name: "c", Expect: Expect{Args: []any{"a", "b"}}}
	errs := checkCase(c, caseOutcome{CaseResult: CaseResult{Args: []any{"b", "a"}}})
	assert.Len(t, errs, 1)
}

func TestCheckCase_EmptyArgsMatchNil(t *testing.T) {
	c := &Case{Name: "c", Expect: Expect{Args: []any{}}}
	assert.Empty(t, checkCase(c, caseOutcome{CaseResult: CaseResult{Template: "foo IS NULL"}}))
}

func TestCheckCase_Errors(t *testing.T) {
	argErr := fmt.Errorf("compile in: %w", &cond.ArgumentError{Op: "In", Column: "foo", Reason: "want a non-empty list, got int"})

	tests := []struct {
		name   string
		expect string
		err    error
		pass   bool
	}{
		{"invalid_argument via errors.Is", ErrorInvalidArgument, argErr, true},
		{"invalid_argument on other error", ErrorInvalidArgument, errors.New("invalid argument"), false},
		{"substring", "got int", argErr, true},
		{"substring mismatch", "got string", argErr, false},
		{"no error", "anything", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Case{Name: "c", Expect: Expect{Error: tt.expect}}
			out := caseOutcome{err: tt.err}
			if tt.err != nil {
				out.Error = tt.err.Error()
			}
			errs := checkCase(c, out)
			if tt.pass {
				assert.Empty(t, errs)
			} else {
				assert.Len(t, errs, 1)
			}
		})
	}
}

func TestCheckCase_UnsetExpectationsAreSkipped(t *testing.T) {
	c := &Case{Name: "c"}
	out := caseOutcome{CaseResult: CaseResult{Template: "foo=?", Args: []any{"x"}, IDs: []int64{3}}}
	assert.Empty(t, checkCase(c, out))
}

func TestCheckCase_Absent(t *testing.T) {
	c := &Case{Name: "c", Expect: Expect{Absent: ptr(true)}}

	assert.Empty(t, checkCase(c, caseOutcome{CaseResult: CaseResult{Absent: true}}))

	errs := checkCase(c, caseOutcome{CaseResult: CaseResult{Template: "foo=?", Args: []any{"x"}}})
	if assert.Len(t, errs, 1) {
		assert.Contains(t, errs[0].Error(), `Actual: "foo=?" ["x"]`)
	}
}

func TestAssertionErrorFormat(t *testing.T) {
	err := &AssertionError{Case: "lookup", Field: "template", Expected: `"ip=?"`, Actual: `"ip LIKE ?"`}
	assert.Equal(t,
		"Assertion failed: case \"lookup\": template\n  Expected: \"ip=?\"\n  Actual: \"ip LIKE ?\"\n",
		err.Error())
}
