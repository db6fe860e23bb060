package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlcond/internal/testutil"
)

const testTraceID = "test-trace"

var filtersDir = filepath.Join("..", "..", "testdata", "filters")

// testOptions returns root options with a fixed trace id.
func testOptions(format string) *RootOptions {
	return &RootOptions{
		Format:   format,
		TraceIDs: testutil.NewFixedTraceIDGenerator(testTraceID),
	}
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decodeResponse parses a JSON command response.
func decodeResponse(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

// writeFilters writes a single CUE file of package filters into a fresh
// directory.
func writeFilters(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	data := []byte("package filters\n\n" + content + "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "filters.cue"), data, 0644))
	return dir
}
