package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ramizraja09/calcpad/internal/store"
)

// AssertionError is returned when an assertion fails. It includes the trace
// to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		switch event.Type {
		case "run":
			fmt.Fprintf(&buf, "  [%d] run %s %v -> %s\n", event.Seq, event.Calculator, event.Inputs, event.Result)
		case "toggle":
			fmt.Fprintf(&buf, "  [%d] toggle %s -> %v\n", event.Seq, event.Calculator, event.Favorites)
		case "clear":
			fmt.Fprintf(&buf, "  [%d] clear %s\n", event.Seq, event.Calculator)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the final persisted
// state and returns the failure messages.
func EvaluateAssertions(ctx context.Context, result *Result, assertions []Assertion, history *store.History, favorites *store.Favorites) []string {
	var errs []string
	for _, assertion := range assertions {
		var err error
		switch assertion.Type {
		case AssertHistoryCount:
			err = assertHistoryCount(ctx, history, assertion, result.Trace)
		case AssertHistoryResult:
			err = assertHistoryResult(ctx, history, assertion, result.Trace)
		case AssertFavorites:
			err = assertFavorites(ctx, favorites, assertion, result.Trace)
		case AssertFavoritesContain:
			err = assertFavoritesContain(ctx, favorites, assertion, result.Trace, true)
		case AssertFavoritesAbsent:
			err = assertFavoritesContain(ctx, favorites, assertion, result.Trace, false)
		default:
			err = fmt.Errorf("unknown assertion type %q", assertion.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// assertHistoryCount checks a calculator's history holds exactly the
// expected number of entries.
func assertHistoryCount(ctx context.Context, history *store.History, assertion Assertion, trace []TraceEvent) error {
	entries := history.Load(ctx, assertion.Calculator)
	if len(entries) != assertion.Count {
		return &AssertionError{
			Type:     AssertHistoryCount,
			Expected: fmt.Sprintf("%d history entries for %s", assertion.Count, assertion.Calculator),
			Actual:   fmt.Sprintf("%d entries", len(entries)),
			Trace:    trace,
		}
	}
	return nil
}

// assertHistoryResult checks the most recent history entry's result line.
func assertHistoryResult(ctx context.Context, history *store.History, assertion Assertion, trace []TraceEvent) error {
	entries := history.Load(ctx, assertion.Calculator)
	if len(entries) == 0 {
		return &AssertionError{
			Type:     AssertHistoryResult,
			Expected: fmt.Sprintf("most recent entry for %s with result %q", assertion.Calculator, assertion.Result),
			Actual:   "history is empty",
			Trace:    trace,
		}
	}
	if entries[0].Result != assertion.Result {
		return &AssertionError{
			Type:     AssertHistoryResult,
			Expected: fmt.Sprintf("result %q", assertion.Result),
			Actual:   fmt.Sprintf("result %q", entries[0].Result),
			Trace:    trace,
		}
	}
	return nil
}

// assertFavorites checks the full favorites set, in insertion order.
func assertFavorites(ctx context.Context, favorites *store.Favorites, assertion Assertion, trace []TraceEvent) error {
	got := favorites.Load(ctx)
	if !slices.Equal(got, assertion.IDs) {
		return &AssertionError{
			Type:     AssertFavorites,
			Expected: fmt.Sprintf("favorites %v", assertion.IDs),
			Actual:   fmt.Sprintf("favorites %v", got),
			Trace:    trace,
		}
	}
	return nil
}

// assertFavoritesContain checks membership of one id in the favorites set.
func assertFavoritesContain(ctx context.Context, favorites *store.Favorites, assertion Assertion, trace []TraceEvent, want bool) error {
	got := favorites.Contains(ctx, assertion.Calculator)
	if got != want {
		assertType := AssertFavoritesContain
		expected := fmt.Sprintf("%s favorited", assertion.Calculator)
		if !want {
			assertType = AssertFavoritesAbsent
			expected = fmt.Sprintf("%s not favorited", assertion.Calculator)
		}
		return &AssertionError{
			Type:     assertType,
			Expected: expected,
			Actual:   fmt.Sprintf("favorited=%t", got),
			Trace:    trace,
		}
	}
	return nil
}
