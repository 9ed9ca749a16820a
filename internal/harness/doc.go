// Package harness provides conformance testing for the calculator catalog.
//
// The harness executes declarative YAML scenarios against the real catalog
// and an in-memory state store, then validates persistence behavior as
// executable contract tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	steps:
//	  - run: bmi
//	    inputs: { weight: 70, height: 175 }
//	    save: true
//	    expect:
//	      result: "BMI: 22.9; Category: Normal weight"
//	  - run: bmi
//	    inputs: { weight: 0 }
//	    expect:
//	      invalid: [weight, height]
//	  - toggle: bmi
//	  - clear: bmi
//	assertions:
//	  - type: history_count
//	    calculator: bmi
//	    count: 1
//	  - type: favorites
//	    ids: [bmi]
//
// Each step does exactly one of run, toggle, or clear. A run step computes
// with the named calculator; save records the computation in its history.
// The expect clause checks either the one-line result summary or the exact
// set of fields rejected by validation.
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - history_count: Verifies a calculator's history holds exactly N entries
//   - history_result: Verifies the most recent history entry's result line
//   - favorites: Verifies the full favorites set, in insertion order
//   - favorites_contain: Verifies one id is favorited
//   - favorites_absent: Verifies one id is not favorited
//
// # Deterministic Testing
//
// All scenarios execute with a deterministic clock and sequential entry ids
// to ensure reproducible traces and golden snapshot comparison.
//
// The harness uses:
//   - Stepping timestamps (testutil.DeterministicClock)
//   - Sequential entry ids (testutil.SequentialIDs)
//   - An in-memory state adapter (isolated per scenario)
//
// This ensures identical traces across runs for golden file comparison.
//
// # Usage
//
// Load a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/favorites.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Execute and inspect the outcome:
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
