package match

import "shape-caster/shape"

// Defaults returns the built-in matchers in priority order. Sequence and
// mapping matchers run before the conformance fallback so container shapes
// get decomposed rather than rejected outright.
func Defaults() []Func {
	return []Func{Tuple, List, Map, Nested, Value}
}

// Chain is an ordered list of matching strategies. Caller-supplied matchers
// come first, the built-in defaults last.
type Chain struct {
	matchers []Func
}

// NewChain builds a chain that tries the custom matchers in the given order
// before the built-in defaults.
func NewChain(custom ...Func) Chain {
	defaults := Defaults()

	matchers := make([]Func, 0, len(custom)+len(defaults))
	matchers = append(matchers, custom...)
	matchers = append(matchers, defaults...)

	return Chain{matchers: matchers}
}

// Match tries each matcher in order and returns the first outcome that is
// not NoMatch. When no matcher accepts the pairing the result is NoMatch
// and the caller moves on to the next union alternative.
func (c Chain) Match(value any, target *shape.Shape) Outcome {
	for _, m := range c.matchers {
		if out := m(value, target); !out.IsNoMatch() {
			return out
		}
	}

	return NoMatch()
}
