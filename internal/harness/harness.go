package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/ramizraja09/calcpad/internal/calc"
	"github.com/ramizraja09/calcpad/internal/catalog"
	"github.com/ramizraja09/calcpad/internal/registry"
	"github.com/ramizraja09/calcpad/internal/store"
	"github.com/ramizraja09/calcpad/internal/testutil"
)

// Harness executes one scenario against the real catalog and a fresh
// in-memory state store.
type Harness struct {
	registry  *registry.Registry
	history   *store.History
	favorites *store.Favorites
	logger    *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh in-memory adapter for isolation.
// Deterministic helpers ensure reproducible results.
//
// Execution flow:
// 1. Assemble the built-in catalog
// 2. Create a fresh in-memory state adapter
// 3. Execute steps with expect validation
// 4. Evaluate assertions against the final state
// 5. Return result with pass/fail, trace, and errors
func Run(scenario *Scenario) (*Result, error) {
	reg, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("failed to assemble catalog: %w", err)
	}

	adapter := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	clock := testutil.NewDeterministicClock()

	h := &Harness{
		registry: reg,
		history: store.NewHistory(adapter, logger,
			store.WithHistoryClock(clock.Now),
			store.WithHistoryIDs(testutil.SequentialIDs("entry"))),
		favorites: store.NewFavorites(adapter, logger),
		logger:    logger,
	}

	ctx := context.Background()
	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	assertionErrors := EvaluateAssertions(ctx, result, scenario.Assertions, h.history, h.favorites)
	for _, errMsg := range assertionErrors {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSteps runs all scenario steps in order.
//
// Malformed steps (unknown calculator, broken compute) abort the scenario
// with an error. Expect mismatches do not abort; they are collected on the
// result so one run reports every deviation.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		switch {
		case step.Run != "":
			if err := h.executeRun(ctx, i, step, result); err != nil {
				return err
			}
		case step.Toggle != "":
			updated := h.favorites.Toggle(ctx, step.Toggle)
			result.addEvent(TraceEvent{
				Type:       "toggle",
				Calculator: step.Toggle,
				Favorites:  slices.Clone(updated),
			})
		case step.Clear != "":
			h.history.Clear(ctx, step.Clear)
			result.addEvent(TraceEvent{
				Type:       "clear",
				Calculator: step.Clear,
			})
		default:
			return fmt.Errorf("step %d: no action", i)
		}
	}
	return nil
}

// executeRun computes with one calculator and validates the expect clause.
func (h *Harness) executeRun(ctx context.Context, index int, step Step, result *Result) error {
	def, ok := h.registry.Get(step.Run)
	if !ok {
		return fmt.Errorf("step %d: unknown calculator %q", index, step.Run)
	}

	res, err := def.Compute(step.Inputs)
	if err != nil {
		verr, isValidation := calc.AsValidationError(err)
		if !isValidation {
			return fmt.Errorf("step %d: compute failed: %w", index, err)
		}

		fields := make([]string, 0, len(verr.Fields))
		for _, fe := range verr.Fields {
			fields = append(fields, fe.Field)
		}
		result.addEvent(TraceEvent{
			Type:       "run",
			Calculator: def.ID,
			Inputs:     step.Inputs,
			Invalid:    fields,
		})

		// Nothing is computed or saved on invalid inputs.
		if step.Expect == nil || len(step.Expect.Invalid) == 0 {
			result.AddError(fmt.Sprintf("step %d: unexpected invalid inputs for %s: %v", index, def.ID, fields))
		} else if !slices.Equal(fields, step.Expect.Invalid) {
			result.AddError(fmt.Sprintf("step %d: expected invalid fields %v, got %v", index, step.Expect.Invalid, fields))
		}
		return nil
	}

	summary := res.Summary()
	result.addEvent(TraceEvent{
		Type:       "run",
		Calculator: def.ID,
		Inputs:     step.Inputs,
		Result:     summary,
		Saved:      step.Save,
	})

	if step.Expect != nil {
		if len(step.Expect.Invalid) > 0 {
			result.AddError(fmt.Sprintf("step %d: expected invalid fields %v, inputs were accepted", index, step.Expect.Invalid))
		} else if summary != step.Expect.Result {
			result.AddError(fmt.Sprintf("step %d: expected result %q, got %q", index, step.Expect.Result, summary))
		}
	}

	if step.Save {
		h.history.Append(ctx, def.ID, step.Inputs, summary)
	}
	return nil
}
