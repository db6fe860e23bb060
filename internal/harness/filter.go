package harness

import (
	"fmt"

	"github.com/roach88/sqlcond/internal/filterir"
	"github.com/roach88/sqlcond/internal/ir"
)

// FilterNode is the YAML form of a filter tree: exactly one of Column, All,
// Any or Not is set.
type FilterNode struct {
	Column string       `yaml:"column,omitempty"`
	Op     string       `yaml:"op,omitempty"`
	Value  any          `yaml:"value,omitempty"`
	All    []FilterNode `yaml:"all,omitempty"`
	Any    []FilterNode `yaml:"any,omitempty"`
	Not    *FilterNode  `yaml:"not,omitempty"`
}

// ToIR converts the YAML tree to filter IR.
func (n *FilterNode) ToIR() (filterir.Node, error) {
	return n.toIR("filter")
}

func (n *FilterNode) toIR(path string) (filterir.Node, error) {
	shapes := 0
	if n.Column != "" {
		shapes++
	}
	if n.All != nil {
		shapes++
	}
	if n.Any != nil {
		shapes++
	}
	if n.Not != nil {
		shapes++
	}
	if shapes != 1 {
		return nil, fmt.Errorf("%s: node needs exactly one of column, all, any, not", path)
	}

	switch {
	case n.Column != "":
		return filterir.Term{
			Column: n.Column,
			Op:     filterir.Op(n.Op),
			Value:  ir.Of(n.Value),
		}, nil
	case n.All != nil:
		nodes, err := groupToIR(path+".all", n.All)
		if err != nil {
			return nil, err
		}
		return filterir.All{Nodes: nodes}, nil
	case n.Any != nil:
		nodes, err := groupToIR(path+".any", n.Any)
		if err != nil {
			return nil, err
		}
		return filterir.Any{Nodes: nodes}, nil
	default:
		child, err := n.Not.toIR(path + ".not")
		if err != nil {
			return nil, err
		}
		return filterir.Not{Node: child}, nil
	}
}

func groupToIR(path string, children []FilterNode) ([]filterir.Node, error) {
	nodes := make([]filterir.Node, 0, len(children))
	for i := range children {
		node, err := children[i].toIR(fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// node returns the filter tree a case describes.
func (c *Case) node() (filterir.Node, error) {
	if c.Filter != nil {
		return c.Filter.ToIR()
	}
	return filterir.Term{
		Column: c.Column,
		Op:     filterir.Op(c.Op),
		Value:  ir.Of(c.Value),
	}, nil
}
