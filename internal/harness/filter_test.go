package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlcond/internal/filterir"
	"github.com/roach88/sqlcond/internal/ir"
)

func TestFilterNodeToIR(t *testing.T) {
	n := FilterNode{
		All: []FilterNode{
			{Column: "name", Op: "eq", Value: "Alice"},
			{Not: &FilterNode{Column: "ip", Value: []any{"192.0.2.1", nil}}},
			{Any: []FilterNode{}},
		},
	}

	node, err := n.ToIR()
	require.NoError(t, err)

	expected := filterir.All{Nodes: []filterir.Node{
		filterir.Term{Column: "name", Op: filterir.OpEq, Value: ir.String("Alice")},
		filterir.Not{Node: filterir.Term{Column: "ip", Value: ir.Array{ir.String("192.0.2.1"), ir.Null{}}}},
		filterir.Any{Nodes: []filterir.Node{}},
	}}
	assert.Equal(t, expected, node)
}

func TestFilterNodeToIR_Shape(t *testing.T) {
	tests := []struct {
		name string
		node FilterNode
		path string
	}{
		{"empty", FilterNode{}, "filter:"},
		{"two shapes", FilterNode{Column: "a", All: []FilterNode{}}, "filter:"},
		{"nested", FilterNode{Any: []FilterNode{{Column: "a"}, {}}}, "filter.any[1]:"},
		{"under not", FilterNode{Not: &FilterNode{}}, "filter.not:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.node.ToIR()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.path)
			assert.Contains(t, err.Error(), "exactly one of column, all, any, not")
		})
	}
}

func TestCaseNode(t *testing.T) {
	c := Case{Name: "x", Column: "ip", Value: "192.0.2.1"}
	node, err := c.node()
	require.NoError(t, err)
	assert.Equal(t, filterir.Term{Column: "ip", Value: ir.String("192.0.2.1")}, node)
	assert.Equal(t, filterir.DefaultOp, node.(filterir.Term).EffectiveOp())
}
