package harness

// TraceEvent records one executed scenario step for golden comparison.
type TraceEvent struct {
	Seq        int            `json:"seq"`
	Type       string         `json:"type"` // "run", "toggle", or "clear"
	Calculator string         `json:"calculator,omitempty"`
	Inputs     map[string]any `json:"inputs,omitempty"`
	Result     string         `json:"result,omitempty"`
	Invalid    []string       `json:"invalid,omitempty"` // fields rejected by validation
	Saved      bool           `json:"saved,omitempty"`
	Favorites  []string       `json:"favorites,omitempty"` // set after a toggle
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success. True when every expect
	// clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expect and assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addEvent appends a trace event, assigning the next sequence number.
func (r *Result) addEvent(event TraceEvent) {
	event.Seq = len(r.Trace) + 1
	r.Trace = append(r.Trace, event)
}
