package webhook

import (
	"maps"
	"slices"
)

// Registry maps webhook names to their entries. It is built once and never
// modified afterwards, so it is safe for concurrent use.
type Registry struct {
	entries map[string]*Entry
}

// NewRegistry indexes entries by name. A later entry replaces an earlier one with the same name.
func NewRegistry(entries ...*Entry) *Registry {
	r := &Registry{entries: make(map[string]*Entry, len(entries))}
	for _, e := range entries {
		r.entries[e.Name] = e
	}
	return r
}

// Resolve returns the entry registered under name.
func (r *Registry) Resolve(name string) (*Entry, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered webhook names in lexical order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.entries))
}

// Len returns the number of registered webhooks.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
