package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// historyKey is the namespaced storage key for the full history mapping.
const historyKey = "calculation-history"

// MaxEntries bounds each calculator's history. Appending past the bound
// evicts the oldest entry.
const MaxEntries = 50

// Entry is one recorded computation. Inputs hold the raw pre-validation
// values so a later export can recompute from them.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Inputs    map[string]any `json:"inputs"`
	Result    string         `json:"result"`
}

// History is the bounded per-calculator computation log. All calculators
// share one persisted mapping keyed by calculator id, with each calculator's
// entries ordered most recent first.
type History struct {
	adapter Adapter
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// HistoryOption adjusts a History at construction time.
type HistoryOption func(*History)

// WithHistoryClock substitutes the timestamp source.
func WithHistoryClock(now func() time.Time) HistoryOption {
	return func(h *History) { h.now = now }
}

// WithHistoryIDs substitutes the entry id generator.
func WithHistoryIDs(newID func() string) HistoryOption {
	return func(h *History) { h.newID = newID }
}

// NewHistory creates a history store on top of adapter. By default entries
// are stamped with the current UTC time and a time-ordered UUID.
func NewHistory(adapter Adapter, logger *slog.Logger, opts ...HistoryOption) *History {
	if logger == nil {
		logger = slog.Default()
	}
	h := &History{
		adapter: adapter,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load returns the recorded entries for one calculator, most recent first.
func (h *History) Load(ctx context.Context, calculatorID string) []Entry {
	return h.loadAll(ctx)[calculatorID]
}

// Append records a computation for calculatorID and returns that
// calculator's new history. The full mapping is re-read immediately before
// the write so entries recorded for other calculators since the caller's
// last read survive the write-back.
func (h *History) Append(ctx context.Context, calculatorID string, inputs map[string]any, result string) []Entry {
	entry := Entry{
		ID:        h.newID(),
		Timestamp: h.now(),
		Inputs:    inputs,
		Result:    result,
	}

	all := h.loadAll(ctx)
	entries := append([]Entry{entry}, all[calculatorID]...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	all[calculatorID] = entries

	setJSON(ctx, h.adapter, h.logger, historyKey, all)
	return entries
}

// Clear removes all recorded entries for one calculator, leaving other
// calculators' histories intact.
func (h *History) Clear(ctx context.Context, calculatorID string) {
	all := h.loadAll(ctx)
	if _, ok := all[calculatorID]; !ok {
		return
	}
	delete(all, calculatorID)
	setJSON(ctx, h.adapter, h.logger, historyKey, all)
}

// loadAll reads the full persisted mapping, degrading to empty. A corrupt
// payload is discarded wholesale rather than half-decoded.
func (h *History) loadAll(ctx context.Context) map[string][]Entry {
	all := make(map[string][]Entry)
	if !getJSON(ctx, h.adapter, h.logger, historyKey, &all) {
		return make(map[string][]Entry)
	}
	return all
}
