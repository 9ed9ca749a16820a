package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGroupsByCategory(t *testing.T) {
	out, _, err := runCLI(t, withStore(storeArgs(t), "list")...)
	require.NoError(t, err)

	for _, category := range []string{"conversion:", "construction:", "math:", "datetime:", "finance:", "health:"} {
		assert.Contains(t, out, category)
	}
	assert.Contains(t, out, "length-converter")
	assert.Contains(t, out, "Length Converter")
	assert.Contains(t, out, "bmi")
	assert.Contains(t, out, "BMI Calculator")
}

func TestListStarsFavorites(t *testing.T) {
	storeFlags := storeArgs(t)
	_, _, err := runCLI(t, withStore(storeFlags, "favorites", "toggle", "bmi")...)
	require.NoError(t, err)

	out, _, err := runCLI(t, withStore(storeFlags, "list")...)
	require.NoError(t, err)

	assert.Contains(t, out, "* bmi")
	assert.NotContains(t, out, "* length-converter")
}

func TestListCategoryFilter(t *testing.T) {
	out, _, err := runCLI(t, withStore(storeArgs(t), "list", "--category", "health")...)
	require.NoError(t, err)

	assert.Contains(t, out, "bmi")
	assert.NotContains(t, out, "length-converter")
}

func TestListUnknownCategory(t *testing.T) {
	_, _, err := runCLI(t, withStore(storeArgs(t), "list", "--category", "sports")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown category")
}

func TestListJSON(t *testing.T) {
	out, _, err := runCLI(t, withStore(storeArgs(t), "--format", "json", "list")...)
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, data, 12)

	first, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "length-converter", first["id"])
	assert.Equal(t, "Length Converter", first["name"])
	assert.Equal(t, "conversion", first["category"])
	assert.NotEmpty(t, first["description"])
	assert.Equal(t, false, first["favorited"])
}
