package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Params is the raw kind-specific parameter block of a config section.
type Params map[string]any

// Checker validates the parameter block of one registered kind.
type Checker func(Params) error

// UnknownTypeError reports a type name with no registered implementation.
type UnknownTypeError struct {
	Kind  string
	Name  string
	Known []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q (known: %s)", e.Kind, e.Name, strings.Join(e.Known, ", "))
}

// Registry maps kind names to their parameter checks. Lookup is by explicit
// registration, never reflection.
type Registry struct {
	kind    string
	entries map[string]Checker
}

// New creates an empty registry for one config concern, e.g. "optimizer".
func New(kind string) *Registry {
	return &Registry{kind: kind, entries: make(map[string]Checker)}
}

// Register adds a kind under the given name. A nil checker registers a kind
// without parameter constraints. Registering an existing name replaces it.
func (r *Registry) Register(name string, check Checker) {
	r.entries[name] = check
}

// Known returns the registered names in sorted order.
func (r *Registry) Known() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up a type name and runs its parameter check. An unregistered
// name yields an UnknownTypeError listing the known kinds.
func (r *Registry) Resolve(name string, params Params) error {
	check, ok := r.entries[name]
	if !ok {
		return &UnknownTypeError{Kind: r.kind, Name: name, Known: r.Known()}
	}
	if check == nil {
		return nil
	}
	if err := check(params); err != nil {
		return fmt.Errorf("%s %s: %w", r.kind, name, err)
	}
	return nil
}
