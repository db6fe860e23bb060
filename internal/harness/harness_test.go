package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario("../../testdata/scenarios/" + name + ".yaml")
	require.NoError(t, err)
	return s
}

func TestRun_TestdataScenariosPass(t *testing.T) {
	for _, name := range []string{"ip_lookup", "customers_filter", "combine"} {
		t.Run(name, func(t *testing.T) {
			s := loadTestScenario(t, name)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Cases, len(s.Cases))
		})
	}
}

func TestRun_RecordsOutcomes(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: outcomes
description: "records what each case produced"
rows:
  - {name: Alice, ip: 192.0.2.1}
  - {name: Bob, ip: 192.0.2.2}
cases:
  - name: eq
    op: eq
    column: name
    value: Bob
  - name: absent
    column: name
    value: ""
  - name: rejected
    op: in
    column: name
    value: Bob
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	require.Len(t, result.Cases, 3)

	assert.Equal(t, CaseResult{
		Name:     "eq",
		Template: "name=?",
		Args:     []any{"Bob"},
		IDs:      []int64{2},
	}, result.Cases[0])

	assert.Equal(t, CaseResult{
		Name:   "absent",
		Absent: true,
		IDs:    []int64{1, 2},
	}, result.Cases[1])

	assert.Equal(t, "rejected", result.Cases[2].Name)
	assert.Contains(t, result.Cases[2].Error, "invalid argument")
	assert.Nil(t, result.Cases[2].IDs)
}

func TestRun_NoRowsSkipsSelect(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: no_rows
description: "conditions only"
cases:
  - name: like
    op: like
    column: name
    value: "A%"
    expect:
      template: "name LIKE ?"
      args: ["A%"]
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Nil(t, result.Cases[0].IDs)
}

func TestRun_FailuresAreReported(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: failing
description: "every expectation is wrong"
rows:
  - {name: Alice}
cases:
  - name: wrong template
    op: eq
    column: name
    value: Alice
    expect:
      template: "name = ?"
      args: [Bob]
      ids: [2]
  - name: wanted an error
    op: eq
    column: name
    value: Alice
    expect:
      error: invalid_argument
  - name: unexpected error
    op: in
    column: name
    value: Alice
    expect:
      absent: false
  - name: wrong absent
    op: maybe_eq
    column: name
    value: ""
    expect:
      absent: false
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 6)

	assert.Contains(t, result.Errors[0], `case "wrong template": template`)
	assert.Contains(t, result.Errors[1], `case "wrong template": args`)
	assert.Contains(t, result.Errors[2], `case "wrong template": ids`)
	assert.Contains(t, result.Errors[3], `case "wanted an error": error`)
	assert.Contains(t, result.Errors[4], `case "unexpected error": error`)
	assert.Contains(t, result.Errors[5], `case "wrong absent": absent`)
}

func TestRun_MalformedFilterIsHarnessError(t *testing.T) {
	s := &Scenario{
		Name:        "bad",
		Description: "filter with two shapes",
		Cases: []Case{{
			Name:   "two shapes",
			Filter: &FilterNode{Column: "a", Any: []FilterNode{{Column: "b"}}},
		}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `case "two shapes"`)
}

func TestRun_UnstorableRowIsHarnessError(t *testing.T) {
	s := &Scenario{
		Name:        "bad_rows",
		Description: "a list cannot be stored",
		Rows:        []map[string]any{{"name": []any{"a"}}},
		Cases:       []Case{{Name: "any", Column: "name"}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed rows")
}

func TestRun_Deterministic(t *testing.T) {
	s := loadTestScenario(t, "ip_lookup")

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
