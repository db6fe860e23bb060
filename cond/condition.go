package cond

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Condition is a SQL predicate fragment: a template with ? placeholders and
// the values bound to them, in left-to-right order.
//
// The zero Condition is the absence sentinel. Combinators drop it, so a
// relaxed builder that had nothing to filter on disappears from the result.
type Condition struct {
	Template string `json:"template"`
	Args     []any  `json:"args,omitempty"`
}

// Raw promotes a bare template (and optional bind values) to a Condition.
// An empty template yields the zero Condition.
func Raw(template string, args ...any) Condition {
	if template == "" {
		return Condition{}
	}
	return Condition{Template: template, Args: cloneArgs(args)}
}

// IsZero reports whether c is the absence sentinel.
func (c Condition) IsZero() bool {
	return c.Template == ""
}

// Placeholders counts the ? placeholders in the template.
func (c Condition) Placeholders() int {
	return strings.Count(c.Template, "?")
}

// Slice renders c as [template, bind_1, bind_2, ...]. The zero Condition
// renders as nil.
func (c Condition) Slice() []any {
	if c.IsZero() {
		return nil
	}
	out := make([]any, 0, len(c.Args)+1)
	out = append(out, c.Template)
	return append(out, c.Args...)
}

// Equal reports whether two conditions have the same template and the same
// bind values in the same order.
func (c Condition) Equal(other Condition) bool {
	if c.Template != other.Template || len(c.Args) != len(other.Args) {
		return false
	}
	for i := range c.Args {
		if !reflect.DeepEqual(c.Args[i], other.Args[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of c that shares no memory with it.
func (c Condition) Clone() Condition {
	return Condition{Template: c.Template, Args: cloneArgs(c.Args)}
}

func (c Condition) String() string {
	if c.IsZero() {
		return "<none>"
	}
	if len(c.Args) == 0 {
		return c.Template
	}
	return fmt.Sprintf("%s %v", c.Template, c.Args)
}

// cloneArgs copies args, normalizing empty to nil so structurally equal
// conditions compare equal with reflect.DeepEqual too.
func cloneArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	return slices.Clone(args)
}

// placeholderList returns "?,?,...,?" with n placeholders.
func placeholderList(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

// inList builds "<column> IN (?,...)" binding args in order.
func inList(column string, args []any) Condition {
	return Condition{
		Template: column + " IN (" + placeholderList(len(args)) + ")",
		Args:     args,
	}
}
