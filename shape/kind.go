package shape

// Kind represents the variant of a Shape.
type Kind int

const (
	KindInvalid Kind = iota
	KindScalar
	KindOptional
	KindUnion
	KindList
	KindTuple
	KindMap
	KindRecord

	// KindTotal is a constant that represents the total number of kinds defined.
	// Caller-defined kinds for custom matchers and validators must start here.
	KindTotal = int(iota)
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindOptional:
		return "optional"
	case KindUnion:
		return "union"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindMap:
		return "map"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Generic reports whether the kind is one of the core parameterized container
// kinds whose resolved values are subject to post-resolution validation.
func (k Kind) Generic() bool {
	return k == KindList || k == KindTuple || k == KindMap
}
