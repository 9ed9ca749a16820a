// Package registry holds the assembled calculator definitions. The registry
// is built once at startup, preserves registration order for stable catalog
// listings, and is read-only afterward.
package registry

import (
	"fmt"
	"strings"

	"github.com/ramizraja09/calcpad/internal/calc"
)

// DuplicateDefinitionError reports a second registration under an id already
// in use. This is a fatal assembly-time misconfiguration, not a runtime
// condition.
type DuplicateDefinitionError struct {
	ID string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("calculator %q is already registered", e.ID)
}

// Registry is an insertion-ordered collection of calculator definitions.
type Registry struct {
	order []string
	byID  map[string]*calc.Definition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byID: make(map[string]*calc.Definition)}
}

// Register adds a definition. The id must be unique and the definition must
// carry a schema and a compute function.
func (r *Registry) Register(def *calc.Definition) error {
	if def.ID == "" {
		return fmt.Errorf("register calculator: id is required")
	}
	if def.Schema == nil {
		return fmt.Errorf("register calculator %s: schema is required", def.ID)
	}
	if def.Func == nil {
		return fmt.Errorf("register calculator %s: compute function is required", def.ID)
	}
	if _, exists := r.byID[def.ID]; exists {
		return &DuplicateDefinitionError{ID: def.ID}
	}
	r.byID[def.ID] = def
	r.order = append(r.order, def.ID)
	return nil
}

// Get returns the definition registered under id.
func (r *Registry) Get(id string) (*calc.Definition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// All returns every definition in registration order.
func (r *Registry) All() []*calc.Definition {
	defs := make([]*calc.Definition, 0, len(r.order))
	for _, id := range r.order {
		defs = append(defs, r.byID[id])
	}
	return defs
}

// ByCategory returns the definitions in one category, in registration order.
func (r *Registry) ByCategory(cat calc.Category) []*calc.Definition {
	var defs []*calc.Definition
	for _, id := range r.order {
		if def := r.byID[id]; def.Category == cat {
			defs = append(defs, def)
		}
	}
	return defs
}

// Names returns every display name in registration order. This is the list
// handed to the suggestion service.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, id := range r.order {
		names = append(names, r.byID[id].Name)
	}
	return names
}

// ByName returns the definition with the given display name, matched
// case-insensitively. Suggestion responses reference calculators by name.
func (r *Registry) ByName(name string) (*calc.Definition, bool) {
	for _, id := range r.order {
		if def := r.byID[id]; strings.EqualFold(def.Name, name) {
			return def, true
		}
	}
	return nil, false
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.order)
}
