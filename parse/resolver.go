package parse

import (
	"fmt"

	"shape-caster/shape"
)

// parseRecord resolves a raw mapping field by field in declaration order
// and assembles the record through the external object builder. The first
// failing field aborts resolution and propagates with field context.
func (f *Factory) parseRecord(target *shape.Shape, raw map[string]any) (any, error) {
	fields, err := f.catalog.Fields(target.Record)
	if err != nil {
		return nil, &Error{Shape: target, Err: fmt.Errorf("%w: %v", ErrConstruction, err)}
	}

	resolved := make(map[string]any, len(fields))
	for _, field := range fields {
		value, err := f.parseField(field, raw)
		if err != nil {
			return nil, withField(err, field.Name, field.Shape)
		}

		resolved[field.Name] = value
	}

	built, err := f.builder.Build(target.Record, resolved)
	if err != nil {
		return nil, &Error{Shape: target, Err: fmt.Errorf("%w: %v", ErrConstruction, err)}
	}

	return built, nil
}

// parseField resolves one declared field. A missing key or an explicit null
// short-circuits to null for nullable fields and to ErrKeyMissing
// otherwise; no matcher or validator runs in either case.
func (f *Factory) parseField(field shape.Field, raw map[string]any) (any, error) {
	nullable, _ := shape.Unwrap(field.Shape)

	value, ok := raw[field.Name]
	if !ok || value == nil {
		if nullable {
			return nil, nil
		}

		return nil, &Error{Shape: field.Shape, Err: ErrKeyMissing}
	}

	return f.parse(field.Shape, value)
}
