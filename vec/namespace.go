package vec

import (
	"fmt"
	"sort"
	"sync"
)

// Coercer converts a whole vector to the kind it was registered for.
type Coercer func(Value) (Value, error)

// Coercers is the capability table of a Copier, keyed by target kind.
type Coercers map[Kind]Coercer

// Scope looks up coercers by name.
type Scope interface {
	Lookup(name string) (Coercer, bool)
}

// DefaultCoercerNames returns the names the six coercion capabilities are
// registered under by default.
func DefaultCoercerNames() map[Kind]string {
	return map[Kind]string{
		KindLogical:   "as_logical",
		KindInteger:   "as_integer",
		KindDouble:    "as_double",
		KindComplex:   "as_complex",
		KindCharacter: "as_character",
		KindRaw:       "as_bytes",
	}
}

// ResolveCoercers builds a capability table by looking up each name in
// scope. Only atomic kinds may be named.
func ResolveCoercers(scope Scope, names map[Kind]string) (Coercers, error) {
	table := make(Coercers, len(names))
	for kind, name := range names {
		if !kind.IsAtomic() {
			return nil, fmt.Errorf("vec: %w for `%s`", ErrNoCoercion, kind)
		}
		fn, ok := scope.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("vec: coercer %q for %s is not defined", name, kind)
		}
		table[kind] = fn
	}
	return table, nil
}

// ---------------------------------------------------------------------------
// Namespace: named coercion routines
// ---------------------------------------------------------------------------

// Namespace is a Scope that hosts register their coercion routines in.
type Namespace struct {
	mu  sync.RWMutex
	fns map[string]Coercer
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{fns: make(map[string]Coercer)}
}

// Define binds name to fn, replacing any previous binding.
func (ns *Namespace) Define(name string, fn Coercer) {
	ns.mu.Lock()
	ns.fns[name] = fn
	ns.mu.Unlock()
}

// Lookup implements Scope.
func (ns *Namespace) Lookup(name string) (Coercer, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	fn, ok := ns.fns[name]
	return fn, ok
}

// Names returns the bound names in sorted order.
func (ns *Namespace) Names() []string {
	ns.mu.RLock()
	names := make([]string, 0, len(ns.fns))
	for name := range ns.fns {
		names = append(names, name)
	}
	ns.mu.RUnlock()
	sort.Strings(names)
	return names
}
