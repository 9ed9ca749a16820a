package harness

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixturePaths returns the committed scenario files. They double as format
// documentation and as regression tests over the golden traces.
func fixturePaths(t *testing.T) []string {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	return paths
}

func TestScenarioFixtures(t *testing.T) {
	for _, path := range fixturePaths(t) {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "scenario name should match its file name")

			// Regenerate with: go test ./internal/harness -update
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestScenarioFixturesReplay(t *testing.T) {
	for _, path := range fixturePaths(t) {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			first, err := Run(scenario)
			require.NoError(t, err)
			second, err := Run(scenario)
			require.NoError(t, err)

			assert.True(t, first.Pass)
			assert.True(t, second.Pass)
			require.Equal(t, first.Trace, second.Trace)
		})
	}
}

func TestScenarioFixtureTraceOrder(t *testing.T) {
	for _, path := range fixturePaths(t) {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			require.NotEmpty(t, result.Trace)

			assert.Equal(t, 1, result.Trace[0].Seq)
			for i := 1; i < len(result.Trace); i++ {
				assert.Greater(t, result.Trace[i].Seq, result.Trace[i-1].Seq,
					"seq should increase: trace[%d].Seq=%d > trace[%d].Seq=%d",
					i, result.Trace[i].Seq, i-1, result.Trace[i-1].Seq)
			}
		})
	}
}

func TestAssertGolden_FromResult(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "favorites-toggle.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass)

	require.NoError(t, AssertGolden(t, scenario.Name, result))
}

func TestTraceSnapshotJSON(t *testing.T) {
	snapshot := TraceSnapshot{
		ScenarioName: "sample",
		Trace: []TraceEvent{
			{Seq: 1, Type: "toggle", Calculator: "bmi", Favorites: []string{"bmi"}},
		},
	}

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	jsonStr := string(data)
	assert.Contains(t, jsonStr, `"scenario_name":"sample"`)
	assert.Contains(t, jsonStr, `"trace":[`)
	assert.Contains(t, jsonStr, `"calculator":"bmi"`)
	assert.Contains(t, jsonStr, `"favorites":["bmi"]`)

	// Unset optional fields stay out of the snapshot.
	assert.NotContains(t, jsonStr, `"inputs"`)
	assert.NotContains(t, jsonStr, `"result"`)
	assert.NotContains(t, jsonStr, `"saved"`)
}
