// Package parse is the type-directed resolution engine. A Factory turns a
// target shape into a parser that either proves a raw value conforms to the
// shape, coercing it into the corresponding typed value graph, or rejects
// the input with the first point of non-conformance.
//
// Resolution pipeline per value:
//  1. Unwrap optionality and union alternatives.
//  2. Try the matcher chain per candidate shape; first non-NoMatch wins.
//  3. Resolve pending continuations depth-first through the factory itself.
//  4. Confirm resolved containers against the generic validator registry.
//
// A single parse invocation is pure and synchronous; factories, shapes,
// matchers and validators are immutable, so concurrent parses need no
// coordination.
package parse

import (
	"fmt"
	"reflect"

	"shape-caster/match"
	"shape-caster/shape"
	"shape-caster/validate"
)

// FieldCatalog supplies the declared fields of a record shape. Must be
// stable and finite for a given identifier.
type FieldCatalog interface {
	Fields(id shape.TypeID) ([]shape.Field, error)
}

// ObjectBuilder constructs a record instance from resolved field values.
// The resolver does not care whether construction is positional or named.
type ObjectBuilder interface {
	Build(id shape.TypeID, fields map[string]any) (any, error)
}

// ShapeSource is implemented by catalogs that can derive a shape from a Go
// type, such as catalog.Reflect.
type ShapeSource interface {
	ShapeOf(t reflect.Type) (*shape.Shape, error)
}

// Factory builds parsers for target shapes. Construct with New; the zero
// value is not usable.
type Factory struct {
	chain      match.Chain
	validators *validate.Registry
	catalog    FieldCatalog
	builder    ObjectBuilder
}

type config struct {
	matchers   []match.Func
	validators []extraValidator
}

type extraValidator struct {
	kind shape.Kind
	fn   validate.Func
}

// Option customizes a Factory at construction time. Per-factory
// customization layers on top of the immutable built-in defaults.
type Option func(*config)

// WithMatchers prepends custom matchers; they are tried before the built-in
// defaults, in the given order.
func WithMatchers(matchers ...match.Func) Option {
	return func(c *config) {
		c.matchers = append(c.matchers, matchers...)
	}
}

// WithValidator registers a generic validator for an additional shape kind.
// The core list, tuple and map validators cannot be replaced; attempting to
// makes New fail with ErrConfiguration.
func WithValidator(kind shape.Kind, fn validate.Func) Option {
	return func(c *config) {
		c.validators = append(c.validators, extraValidator{kind: kind, fn: fn})
	}
}

// New builds a parser factory around the two external collaborators.
func New(catalog FieldCatalog, builder ObjectBuilder, opts ...Option) (*Factory, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	registry := validate.NewRegistry()
	for _, extra := range cfg.validators {
		if err := registry.Extend(extra.kind, extra.fn); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	return &Factory{
		chain:      match.NewChain(cfg.matchers...),
		validators: registry,
		catalog:    catalog,
		builder:    builder,
	}, nil
}

// Parser returns a parse function for the target shape. The returned
// function is safe for concurrent use.
func (f *Factory) Parser(target *shape.Shape) match.ParseFunc {
	return func(value any) (any, error) {
		return f.parse(target, value)
	}
}

// ParserFor derives the shape of t through the factory's catalog and
// returns a parser for it. The catalog must implement ShapeSource.
func (f *Factory) ParserFor(t reflect.Type) (match.ParseFunc, error) {
	source, ok := f.catalog.(ShapeSource)
	if !ok {
		return nil, fmt.Errorf("%w: catalog cannot derive shapes from Go types", ErrConfiguration)
	}

	target, err := source.ShapeOf(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return f.Parser(target), nil
}

func (f *Factory) parse(target *shape.Shape, value any) (any, error) {
	// A raw mapping against a record shape goes straight to the field
	// resolver. This short-circuit is also what terminates the nested
	// matcher's continuation instead of re-entering the chain forever.
	if raw, ok := value.(map[string]any); ok && target.Kind == shape.KindRecord {
		return f.parseRecord(target, raw)
	}

	nullable, candidates := shape.Unwrap(target)
	if value == nil {
		if nullable {
			return nil, nil
		}

		return nil, &Error{Shape: target, Err: ErrTypeMismatch}
	}

	for _, candidate := range candidates {
		outcome := f.matchCandidate(candidate, value)
		if outcome.IsNoMatch() {
			continue
		}

		resolved, err := outcome.Resolve(f.Parser)
		if err != nil {
			// A matcher accepted the pairing; failures inside its
			// continuation abort the remaining alternatives.
			return nil, err
		}

		if !f.accept(resolved, candidate) {
			continue
		}

		return resolved, nil
	}

	return nil, &Error{Shape: target, Err: ErrTypeMismatch}
}

// matchCandidate runs the chain for one candidate shape. A singleton
// sequence may stand in for its sole element when the target is not itself
// a sequence shape.
func (f *Factory) matchCandidate(candidate *shape.Shape, value any) match.Outcome {
	outcome := f.chain.Match(value, candidate)

	if outcome.IsNoMatch() &&
		candidate.Kind != shape.KindList && candidate.Kind != shape.KindTuple {
		if seq, ok := shape.AsSequence(value); ok && len(seq) == 1 {
			outcome = f.chain.Match(seq[0], candidate)
		}
	}

	return outcome
}

// accept confirms a matcher's result before it is returned. Parameterized
// generic kinds go through the validator registry (fail closed for kinds
// without a validator); record construction is the builder's concern;
// everything else must conform directly.
func (f *Factory) accept(resolved any, candidate *shape.Shape) bool {
	switch candidate.Kind {
	case shape.KindScalar:
		return shape.Conforms(resolved, candidate)
	case shape.KindRecord:
		return resolved != nil
	default:
		return f.validators.Validate(resolved, candidate)
	}
}
