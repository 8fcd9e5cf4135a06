package server

import (
	"fmt"

	"github.com/chazu/rvec/store"
	"github.com/chazu/rvec/vec"
)

// Runtime is the state the worker goroutine owns: the vector store and the
// copier used for pokes.
type Runtime struct {
	Store  *store.Store
	Copier *vec.Copier
}

// NewRuntime builds a runtime whose copier resolves its coercers from scope
// under the given names.
func NewRuntime(st *store.Store, scope vec.Scope, names map[vec.Kind]string) (*Runtime, error) {
	coercers, err := vec.ResolveCoercers(scope, names)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	return &Runtime{
		Store:  st,
		Copier: vec.NewCopier(vec.MemEngine{}, coercers),
	}, nil
}
