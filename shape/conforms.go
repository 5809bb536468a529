package shape

import "reflect"

// Conforms reports whether v already satisfies s by direct structural
// inspection. No coercion and no matcher involvement: this is the check
// used for scalar fallback matching and for post-resolution validation of
// container contents.
func Conforms(v any, s *Shape) bool {
	switch s.Kind {
	case KindOptional:
		return v == nil || Conforms(v, s.Inner)

	case KindUnion:
		for _, alt := range s.Alts {
			if Conforms(v, alt) {
				return true
			}
		}

		return false

	case KindScalar:
		if v == nil {
			return false
		}

		if s.Type == nil {
			return true
		}

		return reflect.TypeOf(v).AssignableTo(s.Type)

	case KindList:
		seq, ok := AsSequence(v)
		if !ok {
			return false
		}

		for _, elem := range seq {
			if !Conforms(elem, s.Elem) {
				return false
			}
		}

		return true

	case KindTuple:
		seq, ok := AsSequence(v)
		if !ok {
			return false
		}

		if s.Variadic {
			for _, elem := range seq {
				if !Conforms(elem, s.Elem) {
					return false
				}
			}

			return true
		}

		if len(seq) != len(s.Slots) {
			return false
		}

		for i, elem := range seq {
			if !Conforms(elem, s.Slots[i]) {
				return false
			}
		}

		return true

	case KindMap:
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.Kind() != reflect.Map {
			return false
		}

		iter := rv.MapRange()
		for iter.Next() {
			if !Conforms(iter.Key().Interface(), s.Key) {
				return false
			}

			if !Conforms(anyOf(iter.Value()), s.Value) {
				return false
			}
		}

		return true

	case KindRecord:
		if v == nil {
			return false
		}

		// Without a Go type the catalog is the only authority on record
		// structure; a present value is taken at face value here.
		if s.Type == nil {
			return true
		}

		return reflect.TypeOf(v).AssignableTo(s.Type)

	default:
		return false
	}
}

// AsSequence returns the elements of v when v is an ordered sequence.
// Strings and byte slices are scalars, not sequences.
func AsSequence(v any) ([]any, bool) {
	if seq, ok := v.([]any); ok {
		return seq, true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	default:
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

// anyOf unwraps a reflect map value into a plain any, mapping untyped nils
// through unchanged.
func anyOf(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}

	return rv.Interface()
}
