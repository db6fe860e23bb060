package cond

import "strings"

// Connective joins conditions in Combine.
type Connective string

const (
	OpAnd Connective = "AND"
	OpOr  Connective = "OR"
)

// Combine joins conditions with a boolean connective.
//
// Zero conditions are dropped. If none remain the result is the zero
// Condition; if one remains it is returned as is, without parentheses.
// Otherwise each template is parenthesized and joined with the connective,
// and the bind values are concatenated in argument order:
//
//	Combine(OpAnd, Raw("foo=?", 9), Raw("bar IS NULL"))
//	// (foo=?) AND (bar IS NULL) [9]
func Combine(conn Connective, conds ...Condition) Condition {
	present := make([]Condition, 0, len(conds))
	for _, c := range conds {
		if !c.IsZero() {
			present = append(present, c)
		}
	}

	switch len(present) {
	case 0:
		return Condition{}
	case 1:
		return present[0].Clone()
	}

	var b strings.Builder
	var args []any
	for i, c := range present {
		if i > 0 {
			b.WriteString(" ")
			b.WriteString(string(conn))
			b.WriteString(" ")
		}
		b.WriteString("(")
		b.WriteString(c.Template)
		b.WriteString(")")
		args = append(args, c.Args...)
	}
	return Condition{Template: b.String(), Args: args}
}

// And joins conditions with AND. See Combine.
func And(conds ...Condition) Condition {
	return Combine(OpAnd, conds...)
}

// Or joins conditions with OR. See Combine.
func Or(conds ...Condition) Condition {
	return Combine(OpOr, conds...)
}

// Not negates c as NOT (<template>), keeping its bind values.
// The zero Condition stays zero: there is no filter to negate.
func Not(c Condition) Condition {
	if c.IsZero() {
		return Condition{}
	}
	return Condition{
		Template: "NOT (" + c.Template + ")",
		Args:     cloneArgs(c.Args),
	}
}
