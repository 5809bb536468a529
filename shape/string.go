package shape

import "strings"

// String renders the shape for error messages and debugging.
// Examples: "int", "string?", "[]int", "(int, string)", "(int, ...)",
// "map[string]int", "int|string", "config.Config".
func (s *Shape) String() string {
	if s == nil {
		return "<nil>"
	}

	if s == Null {
		return "null"
	}

	switch s.Kind {
	case KindScalar:
		if s.Type == nil {
			return "any"
		}

		return s.Type.String()

	case KindOptional:
		return s.Inner.String() + "?"

	case KindUnion:
		parts := make([]string, len(s.Alts))
		for i, alt := range s.Alts {
			parts[i] = alt.String()
		}

		return strings.Join(parts, "|")

	case KindList:
		return "[]" + s.Elem.String()

	case KindTuple:
		if s.Variadic {
			return "(" + s.Elem.String() + ", ...)"
		}

		parts := make([]string, len(s.Slots))
		for i, slot := range s.Slots {
			parts[i] = slot.String()
		}

		return "(" + strings.Join(parts, ", ") + ")"

	case KindMap:
		return "map[" + s.Key.String() + "]" + s.Value.String()

	case KindRecord:
		return s.Record.String()

	default:
		return "kind(" + s.Kind.String() + ")"
	}
}
