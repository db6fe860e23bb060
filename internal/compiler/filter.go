package compiler

import (
	"fmt"
	"slices"

	"cuelang.org/go/cue"

	"github.com/roach88/sqlcond/internal/filterir"
	"github.com/roach88/sqlcond/internal/ir"
)

// Filter is a named filter compiled from a CUE document.
type Filter struct {
	Name        string
	Description string
	Root        filterir.Node
}

// Shape keys of a filter node. A node has exactly one of column, all, any or not.
const (
	keyColumn      = "column"
	keyOp          = "op"
	keyValue       = "value"
	keyAll         = "all"
	keyAny         = "any"
	keyNot         = "not"
	keyDescription = "description"
)

var (
	termKeys  = []string{keyColumn, keyOp, keyValue}
	shapeKeys = []string{keyColumn, keyAll, keyAny, keyNot}
)

// CompileFilter parses a CUE value into a Filter.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the filter struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`filter: by_ip: { column: "ip", op: "find", value: "192.0.2.1" }`)
//	f, err := CompileFilter(v.LookupPath(cue.ParsePath("filter.by_ip")))
func CompileFilter(v cue.Value) (*Filter, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	f := &Filter{}

	// Filter name comes from the struct label (the path selector)
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		f.Name = labels[len(labels)-1].String()
	}

	// Description is optional and only allowed on the root node
	descVal := v.LookupPath(cue.ParsePath(keyDescription))
	if descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		f.Description = desc
	}

	root, err := parseNode(v, "", true)
	if err != nil {
		return nil, err
	}
	f.Root = root

	return f, nil
}

// CompileFilters compiles every field of a filter: struct, in declaration order.
// With failFast it stops at the first broken filter; otherwise it reports
// every broken filter and returns the ones that compiled. Each error is a
// *FilterError naming its filter, except a failure to read the struct itself.
func CompileFilters(v cue.Value, failFast bool) ([]Filter, []error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, []error{formatCUEError(err)}
	}

	var filters []Filter
	var errs []error
	for iter.Next() {
		f, err := CompileFilter(iter.Value())
		if err != nil {
			errs = append(errs, &FilterError{Name: iter.Label(), Err: err})
			if failFast {
				break
			}
			continue
		}
		filters = append(filters, *f)
	}
	return filters, errs
}

// parseNode dispatches on the node's shape key.
func parseNode(v cue.Value, field string, root bool) (filterir.Node, error) {
	if v.IncompleteKind() != cue.StructKind {
		return nil, &CompileError{
			Field:   fieldOr(field, "filter"),
			Message: fmt.Sprintf("filter node must be a struct, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}

	labels, err := fieldLabels(v)
	if err != nil {
		return nil, err
	}

	var shape string
	for _, label := range labels {
		switch {
		case slices.Contains(shapeKeys, label):
			if shape != "" {
				return nil, &CompileError{
					Field:   fieldOr(field, "filter"),
					Message: fmt.Sprintf("node has both %q and %q; use exactly one of column, all, any, not", shape, label),
					Pos:     v.Pos(),
				}
			}
			shape = label
		case slices.Contains(termKeys, label):
		case label == keyDescription && root:
		default:
			return nil, &CompileError{
				Field:   join(field, label),
				Message: "unknown field",
				Pos:     v.LookupPath(cue.MakePath(cue.Str(label))).Pos(),
			}
		}
	}

	switch shape {
	case keyColumn:
		return parseTerm(v, field)
	case keyAll:
		nodes, err := parseGroup(v.LookupPath(cue.ParsePath(keyAll)), join(field, keyAll))
		if err != nil {
			return nil, err
		}
		return filterir.All{Nodes: nodes}, nil
	case keyAny:
		nodes, err := parseGroup(v.LookupPath(cue.ParsePath(keyAny)), join(field, keyAny))
		if err != nil {
			return nil, err
		}
		return filterir.Any{Nodes: nodes}, nil
	case keyNot:
		child, err := parseNode(v.LookupPath(cue.ParsePath(keyNot)), join(field, keyNot), false)
		if err != nil {
			return nil, err
		}
		return filterir.Not{Node: child}, nil
	default:
		return nil, &CompileError{
			Field:   fieldOr(field, "filter"),
			Message: "node needs one of column, all, any, not",
			Pos:     v.Pos(),
		}
	}
}

// parseTerm parses {column, op, value}. Op defaults to maybe_find and an
// omitted value is null.
func parseTerm(v cue.Value, field string) (filterir.Node, error) {
	column, err := v.LookupPath(cue.ParsePath(keyColumn)).String()
	if err != nil {
		return nil, &CompileError{
			Field:   join(field, keyColumn),
			Message: "column must be a string",
			Pos:     v.LookupPath(cue.ParsePath(keyColumn)).Pos(),
		}
	}

	term := filterir.Term{Column: column, Value: ir.Null{}}

	opVal := v.LookupPath(cue.ParsePath(keyOp))
	if opVal.Exists() {
		op, err := opVal.String()
		if err != nil {
			return nil, &CompileError{
				Field:   join(field, keyOp),
				Message: "op must be a string",
				Pos:     opVal.Pos(),
			}
		}
		term.Op = filterir.Op(op)
		if !term.Op.Valid() {
			return nil, &CompileError{
				Field:   join(field, keyOp),
				Message: fmt.Sprintf("unknown op %q (want one of %v)", op, filterir.Ops()),
				Pos:     opVal.Pos(),
			}
		}
	}

	valueVal := v.LookupPath(cue.ParsePath(keyValue))
	if valueVal.Exists() {
		value, err := decodeValue(valueVal, join(field, keyValue))
		if err != nil {
			return nil, err
		}
		term.Value = value
	}

	return term, nil
}

func parseGroup(v cue.Value, field string) ([]filterir.Node, error) {
	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: "must be a list of filter nodes",
			Pos:     v.Pos(),
		}
	}

	nodes := []filterir.Node{}
	for i := 0; iter.Next(); i++ {
		node, err := parseNode(iter.Value(), fmt.Sprintf("%s[%d]", field, i), false)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// decodeValue converts a concrete CUE value to an ir.Value through its JSON
// encoding.
func decodeValue(v cue.Value, field string) (ir.Value, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: "value must be concrete",
			Pos:     v.Pos(),
		}
	}

	data, err := v.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err)
	}

	value, err := ir.UnmarshalValue(data)
	if err != nil {
		return nil, &CompileError{Field: field, Message: err.Error(), Pos: v.Pos()}
	}
	return value, nil
}

func fieldLabels(v cue.Value) ([]string, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var labels []string
	for iter.Next() {
		labels = append(labels, iter.Label())
	}
	return labels, nil
}

func join(field, key string) string {
	if field == "" {
		return key
	}
	return field + "." + key
}

func fieldOr(field, fallback string) string {
	if field == "" {
		return fallback
	}
	return field
}
