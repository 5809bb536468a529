package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"shape-caster/shape"
)

var (
	// ErrCyclicType is returned when a struct type directly or indirectly
	// contains itself; the engine requires finite acyclic shape graphs.
	ErrCyclicType = errors.New("cyclic type cannot be described as a shape")
	// ErrUnsupportedType is returned for Go types with no shape
	// counterpart (channels, functions, non-empty interfaces).
	ErrUnsupportedType = errors.New("type cannot be described as a shape")
)

// Reflect derives record shapes from Go struct types and builds instances
// with the reflect package. Derived shapes are cached per type, so deriving
// is cheap after the first call.
type Reflect struct {
	mu     sync.Mutex
	shapes map[reflect.Type]*shape.Shape
	fields map[shape.TypeID][]shape.Field
	types  map[shape.TypeID]reflect.Type
}

// NewReflect returns an empty reflection-backed catalog.
func NewReflect() *Reflect {
	return &Reflect{
		shapes: make(map[reflect.Type]*shape.Shape),
		fields: make(map[shape.TypeID][]shape.Field),
		types:  make(map[shape.TypeID]reflect.Type),
	}
}

// TypeIDOf returns the record identifier for a named Go type.
func TypeIDOf(t reflect.Type) shape.TypeID {
	return shape.TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
}

// ShapeOf derives the shape of a Go type:
// pointer → optional, slice → list, array → fixed tuple, map → map,
// struct → record, basic kind → scalar, empty interface → any.
func (r *Reflect) ShapeOf(t reflect.Type) (*shape.Shape, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.shapeOf(t, make(map[reflect.Type]bool))
}

// ShapeFor derives the shape of the Go type T.
func ShapeFor[T any](r *Reflect) (*shape.Shape, error) {
	return r.ShapeOf(reflect.TypeOf((*T)(nil)).Elem())
}

func (r *Reflect) shapeOf(t reflect.Type, seen map[reflect.Type]bool) (*shape.Shape, error) {
	if s, ok := r.shapes[t]; ok {
		return s, nil
	}

	s, err := r.deriveShape(t, seen)
	if err != nil {
		return nil, err
	}

	r.shapes[t] = s

	return s, nil
}

func (r *Reflect) deriveShape(t reflect.Type, seen map[reflect.Type]bool) (*shape.Shape, error) {
	switch t.Kind() {
	case reflect.Pointer:
		inner, err := r.shapeOf(t.Elem(), seen)
		if err != nil {
			return nil, err
		}

		return shape.Optional(inner), nil

	case reflect.Slice:
		elem, err := r.shapeOf(t.Elem(), seen)
		if err != nil {
			return nil, err
		}

		return shape.List(elem), nil

	case reflect.Array:
		elem, err := r.shapeOf(t.Elem(), seen)
		if err != nil {
			return nil, err
		}

		slots := make([]*shape.Shape, t.Len())
		for i := range slots {
			slots[i] = elem
		}

		return shape.Tuple(slots...), nil

	case reflect.Map:
		key, err := r.shapeOf(t.Key(), seen)
		if err != nil {
			return nil, err
		}

		value, err := r.shapeOf(t.Elem(), seen)
		if err != nil {
			return nil, err
		}

		return shape.Map(key, value), nil

	case reflect.Struct:
		return r.deriveRecord(t, seen)

	case reflect.Interface:
		if t.NumMethod() == 0 {
			return shape.Any(), nil
		}

		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)

	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return shape.Scalar(t), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

func (r *Reflect) deriveRecord(t reflect.Type, seen map[reflect.Type]bool) (*shape.Shape, error) {
	if seen[t] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicType, t)
	}

	seen[t] = true
	defer delete(seen, t)

	id := TypeIDOf(t)

	fields := make([]shape.Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := fieldName(sf)
		if name == "" {
			continue
		}

		fs, err := r.shapeOf(sf.Type, seen)
		if err != nil {
			return nil, err
		}

		fields = append(fields, shape.Field{Name: name, Shape: fs})
	}

	r.fields[id] = fields
	r.types[id] = t

	record := shape.Record(id)
	record.Type = t

	return record, nil
}

// fieldName returns the key a struct field is looked up under: the json
// tag name when present, otherwise the Go field name. A "-" tag excludes
// the field.
func fieldName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name
	}

	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	default:
		return name
	}
}

// Fields returns the ordered declared fields of a derived record type.
func (r *Reflect) Fields(id shape.TypeID) ([]shape.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fields, ok := r.fields[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecord, id)
	}

	return fields, nil
}

// Build constructs a record instance by assigning resolved field values
// into a fresh struct value.
func (r *Reflect) Build(id shape.TypeID, fields map[string]any) (any, error) {
	r.mu.Lock()
	t, ok := r.types[id]
	declared := r.fields[id]
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecord, id)
	}

	out := reflect.New(t).Elem()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := fieldName(sf)
		if name == "" || !declaredField(declared, name) {
			continue
		}

		value, ok := fields[name]
		if !ok || value == nil {
			continue
		}

		if err := assign(out.Field(i), value); err != nil {
			return nil, fmt.Errorf("field %s of %s: %w", name, id, err)
		}
	}

	return out.Interface(), nil
}

func declaredField(fields []shape.Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}

	return false
}

// assign recursively places a resolved value into a struct field,
// materializing pointers, slices, arrays and maps of the target's
// concrete types along the way.
func assign(target reflect.Value, value any) error {
	if value == nil {
		return nil
	}

	rv := reflect.ValueOf(value)
	tt := target.Type()

	if rv.Type().AssignableTo(tt) {
		target.Set(rv)
		return nil
	}

	switch tt.Kind() {
	case reflect.Pointer:
		elem := reflect.New(tt.Elem())
		if err := assign(elem.Elem(), value); err != nil {
			return err
		}

		target.Set(elem)

		return nil

	case reflect.Slice:
		seq, ok := value.([]any)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", value, tt)
		}

		out := reflect.MakeSlice(tt, len(seq), len(seq))
		for i, elem := range seq {
			if err := assign(out.Index(i), elem); err != nil {
				return err
			}
		}

		target.Set(out)

		return nil

	case reflect.Array:
		seq, ok := value.([]any)
		if !ok || len(seq) != tt.Len() {
			return fmt.Errorf("cannot assign %T to %s", value, tt)
		}

		for i, elem := range seq {
			if err := assign(target.Index(i), elem); err != nil {
				return err
			}
		}

		return nil

	case reflect.Map:
		out := reflect.MakeMap(tt)

		setEntry := func(k, v any) error {
			key := reflect.New(tt.Key()).Elem()
			if err := assign(key, k); err != nil {
				return err
			}

			val := reflect.New(tt.Elem()).Elem()
			if err := assign(val, v); err != nil {
				return err
			}

			out.SetMapIndex(key, val)

			return nil
		}

		switch m := value.(type) {
		case map[any]any:
			for k, v := range m {
				if err := setEntry(k, v); err != nil {
					return err
				}
			}
		case map[string]any:
			for k, v := range m {
				if err := setEntry(k, v); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("cannot assign %T to %s", value, tt)
		}

		target.Set(out)

		return nil

	default:
		return fmt.Errorf("cannot assign %T to %s", value, tt)
	}
}
