package cond

import (
	"fmt"

	"github.com/roach88/sqlcond/internal/ir"
)

// MaybeIn matches column against any element of values, which must be a
// non-empty slice or array. Anything else gives the zero Condition.
//
// Absent elements (nil or "") are not bound; they add an IS NULL branch:
//
//	MaybeIn("foo", []any{7, 9, 13})  // foo IN (?,?,?) [7 9 13]
//	MaybeIn("foo", []any{7, nil, 13}) // foo IN (?,?) OR foo IS NULL [7 13]
//	MaybeIn("foo", []any{nil})        // foo IS NULL
func MaybeIn(column string, values any) Condition {
	arr, ok := ir.Of(values).(ir.Array)
	if !ok || len(arr) == 0 {
		return Condition{}
	}
	return membership(column, arr)
}

// In is MaybeIn for callers that require a list. It returns an error
// wrapping ErrInvalidArgument when values is not a non-empty slice or array.
func In(column string, values any) (Condition, error) {
	v := ir.Of(values)
	if c := MaybeIn(column, v); !c.IsZero() {
		return c, nil
	}
	return Condition{}, &ArgumentError{
		Op:     "In",
		Column: column,
		Reason: fmt.Sprintf("want a non-empty list, got %s", describe(v)),
	}
}

func membership(column string, arr ir.Array) Condition {
	var args []any
	hasNull := false
	for _, elem := range arr {
		if ir.IsAbsent(elem) {
			hasNull = true
			continue
		}
		args = append(args, ir.Native(elem))
	}

	switch {
	case len(args) == 0:
		return isNull(column)
	case hasNull:
		c := inList(column, args)
		c.Template += " OR " + column + " IS NULL"
		return c
	default:
		return inList(column, args)
	}
}

func describe(v ir.Value) string {
	if arr, ok := v.(ir.Array); ok && len(arr) == 0 {
		return "an empty list"
	}
	return ir.Kind(v)
}
