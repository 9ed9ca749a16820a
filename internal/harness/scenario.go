package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario. Scenarios execute a sequence
// of catalog and persistence steps and assert on the resulting state.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps contains the actions to execute, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final persisted state.
	// Supported types: history_count, history_result, favorites,
	// favorites_contain, favorites_absent.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one scenario action. Exactly one of Run, Toggle, or Clear must be
// set.
type Step struct {
	// Run names a calculator to compute with.
	Run string `yaml:"run,omitempty"`

	// Inputs contains the raw inputs for a run step, exactly as a client
	// would submit them.
	Inputs map[string]interface{} `yaml:"inputs,omitempty"`

	// Save records the computation in the calculator's history.
	Save bool `yaml:"save,omitempty"`

	// Expect validates the outcome of a run step. If nil, the computation
	// is expected to succeed and its result is not checked.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// Toggle flips the named calculator in and out of the favorites set.
	Toggle string `yaml:"toggle,omitempty"`

	// Clear deletes the named calculator's history.
	Clear string `yaml:"clear,omitempty"`
}

// ExpectClause specifies the expected outcome of a run step. Exactly one of
// Result or Invalid must be set.
type ExpectClause struct {
	// Result is the expected one-line result summary.
	Result string `yaml:"result,omitempty"`

	// Invalid lists the exact fields validation must reject, in schema
	// order. The run is expected to compute nothing.
	Invalid []string `yaml:"invalid,omitempty"`
}

// Assertion validates persisted state after all steps ran.
type Assertion struct {
	// Type specifies the assertion type:
	// - "history_count": a calculator's history holds exactly Count entries
	// - "history_result": the most recent history entry's result line
	// - "favorites": the full favorites set, in insertion order
	// - "favorites_contain": one id is favorited
	// - "favorites_absent": one id is not favorited
	Type string `yaml:"type"`

	// Calculator is the calculator id (used by history_count,
	// history_result, favorites_contain, favorites_absent).
	Calculator string `yaml:"calculator,omitempty"`

	// Count is the expected number of history entries (used by
	// history_count).
	Count int `yaml:"count,omitempty"`

	// Result is the expected result line (used by history_result).
	Result string `yaml:"result,omitempty"`

	// IDs is the expected favorites set (used by favorites).
	IDs []string `yaml:"ids,omitempty"`
}

// Assertion type constants.
const (
	AssertHistoryCount     = "history_count"
	AssertHistoryResult    = "history_result"
	AssertFavorites        = "favorites"
	AssertFavoritesContain = "favorites_contain"
	AssertFavoritesAbsent  = "favorites_absent"
)

// LoadScenario reads and parses a scenario YAML file. Returns an error if
// the file doesn't exist, is malformed, contains unknown fields (typos), or
// is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks that a step names exactly one action and only carries
// fields that action understands.
func validateStep(index int, step *Step) error {
	actions := 0
	if step.Run != "" {
		actions++
	}
	if step.Toggle != "" {
		actions++
	}
	if step.Clear != "" {
		actions++
	}
	if actions != 1 {
		return fmt.Errorf("steps[%d]: exactly one of run, toggle, or clear is required", index)
	}

	if step.Run == "" {
		if step.Inputs != nil {
			return fmt.Errorf("steps[%d]: inputs is only valid with run", index)
		}
		if step.Save {
			return fmt.Errorf("steps[%d]: save is only valid with run", index)
		}
		if step.Expect != nil {
			return fmt.Errorf("steps[%d]: expect is only valid with run", index)
		}
		return nil
	}

	if step.Inputs == nil {
		return fmt.Errorf("steps[%d]: inputs is required (use empty map if no inputs)", index)
	}
	if step.Expect != nil {
		hasResult := step.Expect.Result != ""
		hasInvalid := len(step.Expect.Invalid) > 0
		if hasResult == hasInvalid {
			return fmt.Errorf("steps[%d].expect: exactly one of result or invalid is required", index)
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertHistoryCount:
		if a.Calculator == "" {
			return fmt.Errorf("assertions[%d]: calculator is required for history_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for history_count", index)
		}
	case AssertHistoryResult:
		if a.Calculator == "" {
			return fmt.Errorf("assertions[%d]: calculator is required for history_result", index)
		}
		if a.Result == "" {
			return fmt.Errorf("assertions[%d]: result is required for history_result", index)
		}
	case AssertFavorites:
		if a.IDs == nil {
			return fmt.Errorf("assertions[%d]: ids is required for favorites (use empty list for none)", index)
		}
	case AssertFavoritesContain, AssertFavoritesAbsent:
		if a.Calculator == "" {
			return fmt.Errorf("assertions[%d]: calculator is required for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
