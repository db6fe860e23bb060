package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildText(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "find address",
			args: []string{"find", "ip", "192.0.2.123"},
			want: "ip IN (?,?,?,?,?,?,?,?,?) [192.0.2.123 192.0.2.123/32 192.0.2.0/24 192.0.2.0/25 192.0.2.64/26 192.0.2.96/27 192.0.2.112/28 192.0.2.120/29 192.0.2.120/30]\n",
		},
		{
			name: "several values form a list",
			args: []string{"maybe_in", "postcode", "AB1", "AB2"},
			want: "postcode IN (?,?) [AB1 AB2]\n",
		},
		{
			name: "json values",
			args: []string{"--json", "in", "id", "7", "null", "13"},
			want: "id IN (?,?) OR id IS NULL [7 13]\n",
		},
		{
			name: "null",
			args: []string{"--null", "ne", "postcode"},
			want: "postcode IS NOT NULL\n",
		},
		{
			name: "single element list",
			args: []string{"--list", "in", "id", "7"},
			want: "id IN (?) [7]\n",
		},
		{
			name: "pattern",
			args: []string{"like", "name", "Al%"},
			want: "name LIKE ? [Al%]\n",
		},
		{
			name: "absent",
			args: []string{"maybe_eq", "name", ""},
			want: "<none>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewBuildCommand(testOptions("text")), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestBuildJSON(t *testing.T) {
	out, err := execute(t, NewBuildCommand(testOptions("json")), "--json", "eq", "id", "7")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, testTraceID, resp.TraceID)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "id=?", data["template"])
	assert.Equal(t, []any{float64(7)}, data["args"])
	assert.Equal(t, false, data["absent"])
}

func TestBuildJSONAbsent(t *testing.T) {
	out, err := execute(t, NewBuildCommand(testOptions("json")), "--null", "maybe_find", "ip")
	require.NoError(t, err)

	data := decodeResponse(t, out).Data.(map[string]any)
	assert.Equal(t, "", data["template"])
	assert.Equal(t, []any{}, data["args"])
	assert.Equal(t, true, data["absent"])
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		exitCode int
		code     string
		message  string
	}{
		{"unknown op", []string{"between", "id", "1"}, ExitCommandError, ErrCodeUnknownOp, `unknown op "between"`},
		{"strict in with a scalar", []string{"in", "id", "7"}, ExitFailure, ErrCodeInvalidArgument, "want a non-empty list, got string"},
		{"strict find with an empty list", []string{"--json", "find", "id", "[]"}, ExitFailure, ErrCodeInvalidArgument, "nothing to match"},
		{"bad column", []string{"eq", "id; --", "1"}, ExitCommandError, ErrCodeGeneric, "invalid column name"},
		{"bad json", []string{"--json", "eq", "id", "{"}, ExitCommandError, ErrCodeInvalidValue, "invalid JSON"},
		{"missing value", []string{"eq", "id"}, ExitCommandError, ErrCodeInvalidValue, "a value is required"},
		{"null with values", []string{"--null", "eq", "id", "1"}, ExitCommandError, ErrCodeInvalidValue, "--null takes no values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewBuildCommand(testOptions("text")), tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
			assert.Contains(t, out, tt.message)
		})
	}
}

func TestBuildMissingArgs(t *testing.T) {
	_, err := execute(t, NewBuildCommand(testOptions("text")), "eq")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 2 arg")
}

func TestBuildVerboseLogsToStderr(t *testing.T) {
	opts := testOptions("json")
	opts.Verbose = true
	cmd := NewBuildCommand(opts)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"eq", "name", "bob"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "building condition")
	assert.Contains(t, errOut.String(), "level=DEBUG")
	assert.Contains(t, errOut.String(), "trace_id="+testTraceID)
	decodeResponse(t, out.String())
}
