package cond

import (
	"strings"

	"github.com/roach88/sqlcond/internal/ir"
)

// MaybeEq returns "<column>=?" binding value, or the zero Condition when
// value is absent (nil or "").
//
//	MaybeEq("foo", 123) // foo=? [123]
//	MaybeEq("foo", "")  // zero Condition
func MaybeEq(column string, value any) Condition {
	v := ir.Of(value)
	if ir.IsAbsent(v) {
		return Condition{}
	}
	return Condition{Template: column + "=?", Args: []any{ir.Native(v)}}
}

// Eq is MaybeEq with absent values tested as "<column> IS NULL".
func Eq(column string, value any) Condition {
	if c := MaybeEq(column, value); !c.IsZero() {
		return c
	}
	return isNull(column)
}

// MaybeNe returns "<column>!=? OR <column> IS NULL" binding value, so rows
// holding NULL count as different. Absent values give the zero Condition.
func MaybeNe(column string, value any) Condition {
	v := ir.Of(value)
	if ir.IsAbsent(v) {
		return Condition{}
	}
	return Condition{
		Template: column + "!=? OR " + column + " IS NULL",
		Args:     []any{ir.Native(v)},
	}
}

// Ne is MaybeNe with absent values tested as "<column> IS NOT NULL".
func Ne(column string, value any) Condition {
	if c := MaybeNe(column, value); !c.IsZero() {
		return c
	}
	return Condition{Template: column + " IS NOT NULL"}
}

// MaybeLike returns "<column> LIKE ?" when value is a string containing a
// % or _ wildcard, and MaybeEq otherwise. Non-string values never match as
// patterns.
func MaybeLike(column string, value any) Condition {
	v := ir.Of(value)
	if s, ok := v.(ir.String); ok && isPattern(string(s)) {
		return Condition{Template: column + " LIKE ?", Args: []any{string(s)}}
	}
	return MaybeEq(column, v)
}

// Like is MaybeLike with absent values tested as "<column> IS NULL".
func Like(column string, value any) Condition {
	if c := MaybeLike(column, value); !c.IsZero() {
		return c
	}
	return isNull(column)
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "%_")
}

func isNull(column string) Condition {
	return Condition{Template: column + " IS NULL"}
}
