// Package shape describes expected value structures for the type-directed
// decoder. A Shape is derived once per target type and is immutable, so it
// may be cached and shared across any number of concurrent parse calls.
package shape

import "reflect"

// TypeID uniquely identifies a record type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "shape-caster/examples/config"
	Name    string // e.g., "Config"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Field describes one declared record field.
type Field struct {
	// Name is the key the field is looked up under in raw input mappings.
	Name string
	// Shape is the field's declared shape.
	Shape *Shape
}

// Shape is an immutable description of an expected value shape.
// Exactly the fields relevant to Kind are set; all others stay zero.
type Shape struct {
	// Kind selects the variant.
	Kind Kind
	// Type is the Go type values of this shape conform to directly.
	// Nil on a scalar accepts any non-null value. Set on record shapes
	// derived from Go structs, unset for manually registered records.
	Type reflect.Type
	// Inner is the wrapped shape for KindOptional.
	Inner *Shape
	// Alts are the union alternatives for KindUnion, tried left to right.
	// Never empty and never contains optionals or nested unions.
	Alts []*Shape
	// Elem is the element shape for KindList and variadic KindTuple.
	Elem *Shape
	// Slots are the per-position shapes for a fixed-arity KindTuple.
	Slots []*Shape
	// Variadic marks a homogeneous tuple of any length.
	Variadic bool
	// Key and Value are the entry shapes for KindMap.
	Key, Value *Shape
	// Record identifies the record type for KindRecord; the declared
	// fields are supplied by a field catalog.
	Record TypeID
}

// Null is the shape of an explicit null. It only makes sense as a union
// alternative, where it is normalized away into the union's nullability.
var Null = &Shape{Kind: KindScalar}

// Scalar returns a shape that accepts values directly conforming to t.
func Scalar(t reflect.Type) *Shape {
	return &Shape{Kind: KindScalar, Type: t}
}

// ScalarOf returns a scalar shape for the Go type T.
func ScalarOf[T any]() *Shape {
	return Scalar(reflect.TypeOf((*T)(nil)).Elem())
}

// Any returns a scalar shape that accepts any non-null value.
func Any() *Shape {
	return &Shape{Kind: KindScalar}
}

// Optional wraps inner into a nullable shape. Optionals never nest:
// wrapping an optional returns it unchanged.
func Optional(inner *Shape) *Shape {
	if inner.Kind == KindOptional {
		return inner
	}

	return &Shape{Kind: KindOptional, Inner: inner}
}

// Union returns the union of the given alternatives, tried left to right.
// Nested unions are flattened, optional alternatives and the Null shape are
// stripped and turn the whole union nullable: Union(X, Null) becomes
// Optional(Union(X)). A single remaining alternative collapses to itself;
// a union with no non-null alternative panics.
func Union(alts ...*Shape) *Shape {
	if len(alts) == 0 {
		panic("union requires at least one alternative")
	}

	var (
		nullable bool
		flat     []*Shape
	)

	var add func(s *Shape)
	add = func(s *Shape) {
		switch {
		case s == Null:
			nullable = true
		case s.Kind == KindOptional:
			nullable = true
			add(s.Inner)
		case s.Kind == KindUnion:
			for _, alt := range s.Alts {
				add(alt)
			}
		default:
			flat = append(flat, s)
		}
	}

	for _, alt := range alts {
		add(alt)
	}

	var out *Shape
	switch len(flat) {
	case 0:
		panic("union requires at least one non-null alternative")
	case 1:
		out = flat[0]
	default:
		out = &Shape{Kind: KindUnion, Alts: flat}
	}

	if nullable {
		out = Optional(out)
	}

	return out
}

// List returns a homogeneous sequence shape.
func List(elem *Shape) *Shape {
	return &Shape{Kind: KindList, Elem: elem}
}

// Tuple returns a fixed-arity sequence shape with one shape per slot.
func Tuple(slots ...*Shape) *Shape {
	return &Shape{Kind: KindTuple, Slots: slots}
}

// TupleOf returns a variadic tuple shape: a sequence of any length whose
// elements all share elem.
func TupleOf(elem *Shape) *Shape {
	return &Shape{Kind: KindTuple, Elem: elem, Variadic: true}
}

// Map returns a key-value mapping shape.
func Map(key, value *Shape) *Shape {
	return &Shape{Kind: KindMap, Key: key, Value: value}
}

// Record returns a record shape whose fields are looked up under id.
func Record(id TypeID) *Shape {
	return &Shape{Kind: KindRecord, Record: id}
}
