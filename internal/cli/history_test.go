package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEmptyByDefault(t *testing.T) {
	out, _, err := runCLI(t, withStore(storeArgs(t), "history", "list", "bmi")...)
	require.NoError(t, err)
	assert.Contains(t, out, "No history for bmi.")
}

func TestHistoryListsNewestFirst(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "bmi", "weight=70", "height=175", "--save")...)
	require.NoError(t, err)
	_, _, err = runCLI(t, withStore(store, "run", "bmi", "weight=80", "height=175", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "history", "list", "bmi")...)
	require.NoError(t, err)
	assert.Contains(t, out, "History for bmi:")
	assert.Contains(t, out, "BMI: 26.1")
	assert.Contains(t, out, "BMI: 22.9")
	assert.Less(t, strings.Index(out, "BMI: 26.1"), strings.Index(out, "BMI: 22.9"),
		"most recent computation should come first")
}

func TestHistoryLimit(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "bmi", "weight=70", "height=175", "--save")...)
	require.NoError(t, err)
	_, _, err = runCLI(t, withStore(store, "run", "bmi", "weight=80", "height=175", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "history", "list", "bmi", "--limit", "1")...)
	require.NoError(t, err)
	assert.Contains(t, out, "BMI: 26.1")
	assert.NotContains(t, out, "BMI: 22.9")
}

func TestHistoryIsolatedPerCalculator(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "bmi", "weight=70", "height=175", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "history", "list", "acreage")...)
	require.NoError(t, err)
	assert.Contains(t, out, "No history for acreage.")
}

func TestHistoryClear(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "bmi", "weight=70", "height=175", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "history", "clear", "bmi")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared history for bmi.")

	out, _, err = runCLI(t, withStore(store, "history", "list", "bmi")...)
	require.NoError(t, err)
	assert.Contains(t, out, "No history for bmi.")
}

func TestHistoryJSON(t *testing.T) {
	store := storeArgs(t)

	_, _, err := runCLI(t, withStore(store, "run", "bmi", "weight=70", "height=175", "--save")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(store, "--format", "json", "history", "list", "bmi")...)
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	entry, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, entry["id"])
	assert.NotEmpty(t, entry["timestamp"])
	assert.Equal(t, "BMI: 22.9; Category: Normal weight", entry["result"])

	inputs, ok := entry["inputs"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "70", inputs["weight"])
}
