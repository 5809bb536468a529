// Package match implements the matching strategies that decide whether and
// how a raw value satisfies a target shape. Matchers are stateless; an
// ordered chain tries them until the first one that does not report NoMatch.
package match

import (
	"errors"

	"shape-caster/shape"
)

// ParseFunc resolves one raw value against one target shape.
type ParseFunc func(value any) (any, error)

// GetParser builds a parser for an arbitrary nested shape. It is the
// capability handed to pending continuations by the resolution driver,
// and the only way a matcher may recurse.
type GetParser func(target *shape.Shape) ParseFunc

// Continuation is a deferred resolution of nested shapes. It receives a
// parser capability and produces a final value or propagates failure.
type Continuation func(parserFor GetParser) (any, error)

type outcomeKind int

const (
	outcomeNoMatch outcomeKind = iota
	outcomeResolved
	outcomePending
)

// Outcome is the tagged result of one matcher invocation: no match, a final
// value, or a pending continuation that needs recursive resolution.
// Exactly one variant holds.
type Outcome struct {
	kind    outcomeKind
	value   any
	resolve Continuation
}

// NoMatch reports that the matcher does not apply to the pairing.
func NoMatch() Outcome {
	return Outcome{kind: outcomeNoMatch}
}

// Resolved carries a final value needing no further resolution.
func Resolved(value any) Outcome {
	return Outcome{kind: outcomeResolved, value: value}
}

// Pending carries a continuation that resolves nested shapes on demand.
func Pending(resolve Continuation) Outcome {
	return Outcome{kind: outcomePending, resolve: resolve}
}

// IsNoMatch reports whether the matcher declined the pairing.
func (o Outcome) IsNoMatch() bool {
	return o.kind == outcomeNoMatch
}

// IsPending reports whether the outcome still needs recursive resolution.
func (o Outcome) IsPending() bool {
	return o.kind == outcomePending
}

// Resolve produces the outcome's final value, invoking a pending
// continuation with the provided parser capability.
func (o Outcome) Resolve(parserFor GetParser) (any, error) {
	switch o.kind {
	case outcomeResolved:
		return o.value, nil
	case outcomePending:
		return o.resolve(parserFor)
	default:
		return nil, errors.New("cannot resolve an outcome that did not match")
	}
}
