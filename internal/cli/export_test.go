package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportMostRecentEntry(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "acreage", "length=208.71", "width=208.71", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "export", "acreage", "--kind", "csv")...)
	require.NoError(t, err)
	assert.Equal(t, "Length,Width,Square Footage,Acres\n208.71,208.71,43559.86,1.0000\n", out)
}

func TestExportSelectsEntry(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "bmi", "weight=70", "height=175", "--save")...)
	require.NoError(t, err)
	_, _, err = runCLI(t, withStore(store, "run", "bmi", "weight=80", "height=175", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "export", "bmi", "--entry", "2")...)
	require.NoError(t, err)
	assert.Contains(t, out, "BMI: 22.9")

	out, _, err = runCLI(t, withStore(store, "export", "bmi")...)
	require.NoError(t, err)
	assert.Contains(t, out, "BMI: 26.1")
}

func TestExportRecomputesFromStoredInputs(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "bmi", "weight=70", "height=175", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "export", "bmi")...)
	require.NoError(t, err)
	assert.Contains(t, out, "BMI Calculator")
	assert.Contains(t, out, "Weight: 70 kg")
	assert.Contains(t, out, "BMI: 22.9")
}

func TestExportToFile(t *testing.T) {
	store := storeArgs(t)
	dest := filepath.Join(t.TempDir(), "report.csv")

	_, _, err := runCLI(t, withStore(store, "run", "acreage", "length=208.71", "width=208.71", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "export", "acreage", "--kind", "csv", "--out", dest)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported entry 1 of acreage to "+dest)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "Length,Width,Square Footage,Acres\n208.71,208.71,43559.86,1.0000\n", string(content))
}

func TestExportNoHistory(t *testing.T) {
	out, _, err := runCLI(t, withStore(storeArgs(t), "export", "bmi")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "no history for bmi")
}

func TestExportEntryOutOfRange(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "bmi", "weight=70", "height=175", "--save")...)
	require.NoError(t, err)

	_, _, err = runCLI(t, withStore(store, "export", "bmi", "--entry", "2")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "out of range")
}

func TestExportUnknownCalculator(t *testing.T) {
	out, _, err := runCLI(t, withStore(storeArgs(t), "export", "nope")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E101")
}

func TestExportUnknownKind(t *testing.T) {
	_, _, err := runCLI(t, withStore(storeArgs(t), "export", "bmi", "--kind", "pdf")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unsupported export kind")
}

func TestExportJSON(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "bmi", "weight=70", "height=175", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "--format", "json", "export", "bmi", "--kind", "csv")...)
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "bmi", data["id"])
	assert.Equal(t, float64(1), data["entry"])
	assert.Equal(t, "csv", data["kind"])
	assert.Contains(t, data["content"], "22.9")
}
