package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes the root command in-process with the given arguments and
// returns captured stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// storeArgs returns a --store flag pointing into t's temp dir. Reuse the
// returned pair across invocations to share state within one test.
func storeArgs(t *testing.T) []string {
	t.Helper()
	return []string{"--store", filepath.Join(t.TempDir(), "state.db")}
}

// withStore appends the --store pair to a command line.
func withStore(store []string, args ...string) []string {
	return append(args, store...)
}

// decodeResponse unmarshals a JSON CLI response envelope.
func decodeResponse(t *testing.T, raw string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp), "output should be a JSON envelope: %s", raw)
	return resp
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
