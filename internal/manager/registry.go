package manager

import (
	"fmt"
	"sync/atomic"

	"profanityd/pkg/types"
)

// Registry is the fixed, ordered set of model slots plus the active selector.
// The set of names never changes after construction.
type Registry struct {
	order  []string
	slots  map[string]*Slot
	active atomic.Pointer[string]
}

// NewRegistry builds a registry from models in configuration order.
// defaultModel must name one of them; empty selects the first model.
func NewRegistry(models []types.Model, defaultModel string) (*Registry, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("registry: no models configured")
	}
	r := &Registry{slots: make(map[string]*Slot, len(models))}
	for _, mdl := range models {
		if mdl.ID == "" {
			return nil, fmt.Errorf("registry: model with empty id (path %q)", mdl.Path)
		}
		if _, dup := r.slots[mdl.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate model id %q", mdl.ID)
		}
		r.slots[mdl.ID] = newSlot(mdl)
		r.order = append(r.order, mdl.ID)
	}
	if defaultModel == "" {
		defaultModel = r.order[0]
	}
	if _, ok := r.slots[defaultModel]; !ok {
		return nil, fmt.Errorf("registry: default model %q is not configured", defaultModel)
	}
	r.active.Store(&defaultModel)
	return r, nil
}

// Names returns slot names in configuration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Slot returns the slot for name.
func (r *Registry) Slot(name string) (*Slot, bool) {
	s, ok := r.slots[name]
	return s, ok
}

// Active returns the current active model name.
func (r *Registry) Active() string { return *r.active.Load() }

// Resolve returns explicit when it names a slot, the active name when explicit
// is empty, and an UnknownModel error otherwise.
func (r *Registry) Resolve(explicit string) (string, error) {
	if explicit == "" {
		return r.Active(), nil
	}
	if _, ok := r.slots[explicit]; !ok {
		return "", ErrUnknownModel(explicit)
	}
	return explicit, nil
}

// swapActive replaces the active name and returns the previous one.
func (r *Registry) swapActive(name string) string {
	if _, ok := r.slots[name]; !ok {
		panic(fmt.Sprintf("registry: swapActive to unknown model %q", name))
	}
	return *r.active.Swap(&name)
}
