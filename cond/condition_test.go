package cond

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaw(t *testing.T) {
	assert.True(t, Raw("").IsZero())
	assert.Equal(t, Condition{Template: "foo=bar"}, Raw("foo=bar"))
	assert.Equal(t, Condition{Template: "foo=?", Args: []any{5}}, Raw("foo=?", 5))
}

func TestRawDoesNotAliasArgs(t *testing.T) {
	args := []any{1, 2}
	c := Raw("a IN (?,?)", args...)
	args[0] = 99

	assert.Equal(t, []any{1, 2}, c.Args)
}

func TestConditionSlice(t *testing.T) {
	assert.Nil(t, Condition{}.Slice())
	assert.Equal(t, []any{"foo IS NULL"}, Raw("foo IS NULL").Slice())
	assert.Equal(t, []any{"foo IN (?,?)", 3, 5}, Raw("foo IN (?,?)", 3, 5).Slice())
}

func TestConditionEqual(t *testing.T) {
	a := Raw("foo=?", []any{1, 2})
	b := Raw("foo=?", []any{1, 2})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Raw("foo=?", []any{2, 1})))
	assert.False(t, a.Equal(Raw("bar=?", []any{1, 2})))
	assert.True(t, Condition{}.Equal(Condition{}))
}

func TestConditionClone(t *testing.T) {
	orig := Raw("foo=? OR bar=?", 5, 7)
	clone := orig.Clone()
	clone.Args[0] = 0

	assert.Equal(t, []any{5, 7}, orig.Args)
	assert.Nil(t, Raw("x IS NULL").Clone().Args)
}

func TestConditionString(t *testing.T) {
	assert.Equal(t, "<none>", Condition{}.String())
	assert.Equal(t, "foo IS NULL", Eq("foo", nil).String())
	assert.Equal(t, "foo=? [7]", Eq("foo", 7).String())
}

func TestConditionJSON(t *testing.T) {
	data, err := json.Marshal(Eq("foo", 7))
	require.NoError(t, err)
	assert.JSONEq(t, `{"template":"foo=?","args":[7]}`, string(data))

	data, err = json.Marshal(Eq("foo", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"template":"foo IS NULL"}`, string(data))
}

func TestPlaceholderList(t *testing.T) {
	assert.Equal(t, "", placeholderList(0))
	assert.Equal(t, "?", placeholderList(1))
	assert.Equal(t, "?,?,?", placeholderList(3))
}
