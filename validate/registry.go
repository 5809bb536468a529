// Package validate confirms the structural soundness of resolved container
// values after a pending match resolves: arity and per-element, per-key and
// per-value conformance against the declared shape's type arguments.
package validate

import (
	"errors"
	"fmt"

	"shape-caster/shape"
)

// ErrCoreKind is returned when a caller attempts to override one of the
// built-in validators for list, tuple or map shapes. Those kinds are fixed
// and can only be extended with additional kinds.
var ErrCoreKind = errors.New("core generic validator kinds cannot be overridden")

// Func checks a resolved container value against its declared type
// arguments. It performs direct type checks, never a re-parse.
type Func func(resolved any, target *shape.Shape) bool

// Registry maps generic shape kinds to structural soundness checks. A kind
// without a registered validator is treated as invalid (fail closed), which
// guards against silently accepting structurally wrong containers produced
// by a custom matcher.
type Registry struct {
	byKind map[shape.Kind]Func
}

// NewRegistry returns a registry holding the built-in validators for the
// list, tuple and map kinds.
func NewRegistry() *Registry {
	return &Registry{
		byKind: map[shape.Kind]Func{
			shape.KindList:  validList,
			shape.KindTuple: validTuple,
			shape.KindMap:   validMap,
		},
	}
}

// Extend registers a validator for an additional generic kind. The three
// core kinds stay fixed and yield ErrCoreKind.
func (r *Registry) Extend(kind shape.Kind, fn Func) error {
	if kind.Generic() {
		return fmt.Errorf("%w: %s", ErrCoreKind, kind)
	}

	r.byKind[kind] = fn

	return nil
}

// Validate runs the registered validator for the target's kind. Unregistered
// kinds fail closed.
func (r *Registry) Validate(resolved any, target *shape.Shape) bool {
	fn, ok := r.byKind[target.Kind]
	if !ok {
		return false
	}

	return fn(resolved, target)
}
