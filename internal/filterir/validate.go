package filterir

import (
	"fmt"

	"github.com/roach88/sqlcond/cond"
	"github.com/roach88/sqlcond/internal/ir"
)

// ValidationResult contains the findings of a filter analysis.
type ValidationResult struct {
	// Clean is true when no warnings were raised.
	Clean bool

	// Warnings lists suspicious constructs, each prefixed with the path of
	// the node that raised it (e.g. "all[1].not").
	Warnings []string
}

// Validate walks a filter tree and reports constructs that compile but are
// probably not what the author meant:
//  1. column names that are not plain SQL identifiers
//  2. unknown ops
//  3. empty all/any groups (absent, so they filter nothing)
//  4. strict ops given an absent value (they test IS NULL or IS NOT NULL)
//  5. membership ops given something other than a non-empty list
//  6. find_ip given a value that is not an expandable IPv4 literal
//
// Validate is a pure function with no side effects.
func Validate(node Node) ValidationResult {
	v := &validator{
		warnings: []string{},
	}
	v.validateNode("filter", node)

	return ValidationResult{
		Clean:    len(v.warnings) == 0,
		Warnings: v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings []string
}

func (v *validator) addWarning(path, format string, args ...any) {
	v.warnings = append(v.warnings, path+": "+fmt.Sprintf(format, args...))
}

func (v *validator) validateNode(path string, n Node) {
	switch node := n.(type) {
	case nil:
		v.addWarning(path, "nil node")
	case Term:
		v.validateTerm(path, node)
	case *Term:
		v.validateTerm(path, *node)
	case All:
		v.validateGroup(path+".all", node.Nodes)
	case *All:
		v.validateGroup(path+".all", node.Nodes)
	case Any:
		v.validateGroup(path+".any", node.Nodes)
	case *Any:
		v.validateGroup(path+".any", node.Nodes)
	case Not:
		v.validateNode(path+".not", node.Node)
	case *Not:
		v.validateNode(path+".not", node.Node)
	default:
		v.addWarning(path, "unknown node type: %T", n)
	}
}

func (v *validator) validateGroup(path string, nodes []Node) {
	if len(nodes) == 0 {
		v.addWarning(path, "empty group is absent and filters nothing")
		return
	}
	for i, child := range nodes {
		v.validateNode(fmt.Sprintf("%s[%d]", path, i), child)
	}
}

func (v *validator) validateTerm(path string, t Term) {
	if !IsIdentifier(t.Column) {
		v.addWarning(path, "column %q is not a valid identifier", t.Column)
	}

	op := t.EffectiveOp()
	if !op.Valid() {
		v.addWarning(path, "unknown op %q", op)
		return
	}

	value := t.Value
	if value == nil {
		value = ir.Null{}
	}

	switch {
	case op.Membership():
		if arr, ok := value.(ir.Array); !ok || len(arr) == 0 {
			v.addWarning(path, "%s on %q needs a non-empty list, got %s", op, t.Column, describe(value))
		}
	case op == OpFindIP:
		if cond.FindIP(t.Column, value).IsZero() {
			v.addWarning(path, "find_ip on %q: %s is not an expandable IPv4 literal", t.Column, describe(value))
		}
	case op.Strict() && ir.IsAbsent(value):
		test := "IS NULL"
		if op == OpNe {
			test = "IS NOT NULL"
		}
		v.addWarning(path, "%s on %q with an absent value tests %s", op, t.Column, test)
	}
}

func describe(v ir.Value) string {
	switch val := v.(type) {
	case ir.String:
		return fmt.Sprintf("%q", string(val))
	case ir.Array:
		if len(val) == 0 {
			return "an empty list"
		}
	}
	return ir.Kind(v)
}
