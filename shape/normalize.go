package shape

// Unwrap decomposes a shape into its nullability flag and the ordered list
// of non-null candidate shapes to try left to right. Pure decomposition,
// no error conditions.
func Unwrap(s *Shape) (nullable bool, candidates []*Shape) {
	switch s.Kind {
	case KindOptional:
		if s.Inner.Kind == KindUnion {
			return true, s.Inner.Alts
		}

		return true, []*Shape{s.Inner}

	case KindUnion:
		return false, s.Alts

	default:
		return false, []*Shape{s}
	}
}
