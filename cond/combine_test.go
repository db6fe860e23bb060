package cond

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnd(t *testing.T) {
	sql1 := Raw("foo=bar and baz=4")
	sql2 := Raw("abc in (?,?,?,?)", 9, 8, 7, 6)
	sql3 := Raw("xyz LIKE ? or xyz LIKE ?", "aaa%", "bbb%")

	got := And(sql1, sql2, sql3)

	assert.Equal(t,
		"(foo=bar and baz=4) AND (abc in (?,?,?,?)) AND (xyz LIKE ? or xyz LIKE ?)",
		got.Template)
	assert.Equal(t, []any{9, 8, 7, 6, "aaa%", "bbb%"}, got.Args)
}

func TestAndDropsAbsent(t *testing.T) {
	sql1 := Raw("foo=bar and baz=4")

	assert.True(t, And().IsZero())
	assert.True(t, And(Condition{}).IsZero())
	assert.Equal(t, sql1, And(sql1))
	assert.Equal(t, sql1, And(sql1, Condition{}))
	assert.Equal(t, sql1, And(Condition{}, sql1, Condition{}))
}

func TestOr(t *testing.T) {
	sql1 := Raw("foo=?", 5)
	sql2 := Raw("bar=?", 7)

	assert.Equal(t, Raw("(foo=?) OR (bar=?)", 5, 7), Or(sql1, sql2))
	assert.True(t, Or().IsZero())
	assert.True(t, Or(Condition{}).IsZero())
	assert.Equal(t, sql1, Or(sql1))
	assert.Equal(t, sql1, Or(sql1, Condition{}))
}

func TestCombineNested(t *testing.T) {
	got := And(
		Or(Eq("a", 1), Eq("b", 2)),
		Not(Eq("c", 3)),
	)

	assert.Equal(t, "((a=?) OR (b=?)) AND (NOT (c=?))", got.Template)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got.Args)
}

func TestCombineSingleIsNotAliased(t *testing.T) {
	in := Raw("foo=?", 5)
	out := And(in)
	out.Args[0] = 6

	assert.Equal(t, []any{5}, in.Args)
}

func TestNot(t *testing.T) {
	assert.Equal(t, Condition{Template: "NOT (foo=bar)"}, Not(Raw("foo=bar")))
	assert.Equal(t, Raw("NOT (foo=? OR bar=?)", 5, 7), Not(Raw("foo=? OR bar=?", 5, 7)))
	assert.True(t, Not(Condition{}).IsZero())
}

func TestNotLeavesInputUntouched(t *testing.T) {
	in := Raw("foo=? OR bar=?", 5, 7)
	out := Not(in)
	out.Args[0] = 0

	assert.Equal(t, "foo=? OR bar=?", in.Template)
	assert.Equal(t, []any{5, 7}, in.Args)
}
