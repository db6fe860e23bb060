package filterir

import (
	"regexp"
	"slices"

	"github.com/roach88/sqlcond/internal/ir"
)

// Node is a filter tree node.
//
// This is a sealed interface - only types in this package implement it.
type Node interface {
	filterNode() // Marker method - seals interface to this package
}

// Op names a condition builder.
type Op string

const (
	OpFind      Op = "find"
	OpMaybeFind Op = "maybe_find"
	OpFindIP    Op = "find_ip"
	OpEq        Op = "eq"
	OpMaybeEq   Op = "maybe_eq"
	OpNe        Op = "ne"
	OpMaybeNe   Op = "maybe_ne"
	OpLike      Op = "like"
	OpMaybeLike Op = "maybe_like"
	OpIn        Op = "in"
	OpMaybeIn   Op = "maybe_in"
)

// DefaultOp is used when a document leaves op unset.
const DefaultOp = OpMaybeFind

var allOps = []Op{
	OpFind, OpMaybeFind, OpFindIP,
	OpEq, OpMaybeEq, OpNe, OpMaybeNe,
	OpLike, OpMaybeLike, OpIn, OpMaybeIn,
}

// Ops returns every known op, in documentation order.
func Ops() []Op {
	return slices.Clone(allOps)
}

// Valid reports whether op names a known builder.
func (op Op) Valid() bool {
	return slices.Contains(allOps, op)
}

// Strict reports whether op turns an absent value into an explicit NULL test
// (or an error) instead of dropping out.
func (op Op) Strict() bool {
	switch op {
	case OpFind, OpEq, OpNe, OpLike, OpIn:
		return true
	}
	return false
}

// Membership reports whether op expects a list value.
func (op Op) Membership() bool {
	return op == OpIn || op == OpMaybeIn
}

// Term applies one builder to one column.
//
// Semantics:
//
//	<op>(<column>, <value>)
//
// Example:
//
//	Term{Column: "ip", Op: OpFind, Value: ir.String("192.0.2.123")}
//
// compiles to the nine-way IN expansion of the address.
type Term struct {
	Column string
	Op     Op       // Empty means DefaultOp
	Value  ir.Value // nil is treated as ir.Null{}
}

func (Term) filterNode() {}

// EffectiveOp returns t.Op, or DefaultOp when unset.
func (t Term) EffectiveOp() Op {
	if t.Op == "" {
		return DefaultOp
	}
	return t.Op
}

// All is a conjunction: (n1) AND (n2) AND ...
// Absent children are dropped; an empty All is absent.
type All struct {
	Nodes []Node
}

func (All) filterNode() {}

// Any is a disjunction: (n1) OR (n2) OR ...
// Absent children are dropped; an empty Any is absent.
type Any struct {
	Nodes []Node
}

func (Any) filterNode() {}

// Not negates its child. The negation of an absent child is absent.
type Not struct {
	Node Node
}

func (Not) filterNode() {}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s is safe to splice into SQL as a table or
// column name.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}
