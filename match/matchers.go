package match

import "shape-caster/shape"

// Func is a stateless matching strategy inspecting one raw value against one
// candidate shape.
type Func func(value any, target *shape.Shape) Outcome

// Tuple matches an ordered sequence against a tuple shape. Fixed-arity
// tuples require the sequence length to equal the slot count; variadic
// tuples accept any length and pair every element with the element shape.
func Tuple(value any, target *shape.Shape) Outcome {
	if target.Kind != shape.KindTuple {
		return NoMatch()
	}

	seq, ok := shape.AsSequence(value)
	if !ok {
		return NoMatch()
	}

	slots := target.Slots
	if target.Variadic {
		slots = make([]*shape.Shape, len(seq))
		for i := range slots {
			slots[i] = target.Elem
		}
	}

	if len(slots) != len(seq) {
		return NoMatch()
	}

	return Pending(func(parserFor GetParser) (any, error) {
		out := make([]any, len(seq))
		for i, elem := range seq {
			v, err := parserFor(slots[i])(elem)
			if err != nil {
				return nil, err
			}

			out[i] = v
		}

		return out, nil
	})
}

// List matches an ordered sequence against a list shape; every element is
// resolved against the single element shape.
func List(value any, target *shape.Shape) Outcome {
	if target.Kind != shape.KindList {
		return NoMatch()
	}

	seq, ok := shape.AsSequence(value)
	if !ok {
		return NoMatch()
	}

	return Pending(func(parserFor GetParser) (any, error) {
		parse := parserFor(target.Elem)

		out := make([]any, len(seq))
		for i, elem := range seq {
			v, err := parse(elem)
			if err != nil {
				return nil, err
			}

			out[i] = v
		}

		return out, nil
	})
}

// Map matches a raw mapping against a map shape; every key and value is
// resolved against the map's key and value shapes respectively.
func Map(value any, target *shape.Shape) Outcome {
	if target.Kind != shape.KindMap {
		return NoMatch()
	}

	raw, ok := value.(map[string]any)
	if !ok {
		return NoMatch()
	}

	return Pending(func(parserFor GetParser) (any, error) {
		parseKey := parserFor(target.Key)
		parseValue := parserFor(target.Value)

		out := make(map[any]any, len(raw))
		for k, v := range raw {
			pk, err := parseKey(k)
			if err != nil {
				return nil, err
			}

			pv, err := parseValue(v)
			if err != nil {
				return nil, err
			}

			out[pk] = pv
		}

		return out, nil
	})
}

// Nested matches a raw mapping against a record shape by handing the whole
// mapping back to a parser for the record. The parser resolves record
// shapes through the field resolver directly, which is what terminates the
// recursion.
func Nested(value any, target *shape.Shape) Outcome {
	if target.Kind != shape.KindRecord {
		return NoMatch()
	}

	if _, ok := value.(map[string]any); !ok {
		return NoMatch()
	}

	return Pending(func(parserFor GetParser) (any, error) {
		return parserFor(target)(value)
	})
}

// Value is the fallback: the raw value already conforms to the target shape
// directly and is passed through untouched. Records without a Go type have
// no direct conformance story; only a mapping through the nested matcher
// can produce them.
func Value(value any, target *shape.Shape) Outcome {
	if target.Kind == shape.KindRecord && target.Type == nil {
		return NoMatch()
	}

	if !shape.Conforms(value, target) {
		return NoMatch()
	}

	return Resolved(value)
}
