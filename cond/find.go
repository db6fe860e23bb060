package cond

import (
	"fmt"

	"github.com/roach88/sqlcond/internal/ir"
)

// matcher builds a condition for the value shapes it recognizes and returns
// the zero Condition for everything else.
type matcher func(column string, v ir.Value) Condition

// findChain is tried in order by Find and MaybeFind; the first non-zero
// result wins. Lists come before IP literals, so a list of addresses is a
// membership test and is not expanded.
var findChain = []matcher{
	func(column string, v ir.Value) Condition { return MaybeIn(column, v) },
	func(column string, v ir.Value) Condition { return FindIP(column, v) },
}

func firstMatch(column string, v ir.Value) Condition {
	for _, m := range findChain {
		if c := m(column, v); !c.IsZero() {
			return c
		}
	}
	return Condition{}
}

// Find is the general purpose builder:
//
//   - a slice becomes an IN condition (see In)
//   - an IPv4 address or network is expanded (see FindIP)
//   - a string with % or _ becomes LIKE
//   - nil or "" becomes IS NULL
//   - anything else is an equality test
//
// An empty slice cannot be matched and yields an error wrapping
// ErrInvalidArgument.
func Find(column string, value any) (Condition, error) {
	v := ir.Of(value)
	if c := firstMatch(column, v); !c.IsZero() {
		return c, nil
	}
	if arr, ok := v.(ir.Array); ok && len(arr) == 0 {
		return Condition{}, &ArgumentError{
			Op:     "Find",
			Column: column,
			Reason: fmt.Sprintf("nothing to match: got %s", describe(v)),
		}
	}
	return Like(column, v), nil
}

// MaybeFind is Find for optional filters: absent values and empty slices give
// the zero Condition, which And and Or drop.
//
//	c := And(
//	    MaybeFind("name", params.Name),
//	    MaybeFind("postcode", params.Postcode),
//	    MaybeFind("ip", params.IP),
//	)
func MaybeFind(column string, value any) Condition {
	v := ir.Of(value)
	if c := firstMatch(column, v); !c.IsZero() {
		return c
	}
	if arr, ok := v.(ir.Array); ok && len(arr) == 0 {
		return Condition{}
	}
	return MaybeLike(column, v)
}
