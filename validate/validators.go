package validate

import (
	"reflect"

	"shape-caster/shape"
)

// validList checks that every element of a resolved sequence conforms to
// the list's element shape.
func validList(resolved any, target *shape.Shape) bool {
	seq, ok := shape.AsSequence(resolved)
	if !ok {
		return false
	}

	for _, elem := range seq {
		if !shape.Conforms(elem, target.Elem) {
			return false
		}
	}

	return true
}

// validTuple checks slot count and per-slot conformance. Variadic tuples
// accept any length, repeating the single element shape.
func validTuple(resolved any, target *shape.Shape) bool {
	seq, ok := shape.AsSequence(resolved)
	if !ok {
		return false
	}

	if target.Variadic {
		for _, elem := range seq {
			if !shape.Conforms(elem, target.Elem) {
				return false
			}
		}

		return true
	}

	if len(seq) != len(target.Slots) {
		return false
	}

	for i, elem := range seq {
		if !shape.Conforms(elem, target.Slots[i]) {
			return false
		}
	}

	return true
}

// validMap checks that every key and value of a resolved mapping conforms
// to the map's key and value shapes.
func validMap(resolved any, target *shape.Shape) bool {
	rv := reflect.ValueOf(resolved)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return false
	}

	iter := rv.MapRange()
	for iter.Next() {
		if !shape.Conforms(iter.Key().Interface(), target.Key) {
			return false
		}

		value := iter.Value()
		var elem any
		if value.IsValid() {
			elem = value.Interface()
		}

		if !shape.Conforms(elem, target.Value) {
			return false
		}
	}

	return true
}
