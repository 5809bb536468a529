// Package catalog supplies the two external collaborators of the resolution
// engine: the field catalog (declared record fields) and the object builder
// (record construction). Two implementations are provided: Static, an
// explicitly registered schema table, and Reflect, which derives shapes
// from Go struct types.
package catalog

import (
	"errors"
	"fmt"

	"shape-caster/shape"
)

// ErrUnknownRecord is returned when a record identifier was never
// registered with the catalog.
var ErrUnknownRecord = errors.New("record type is not registered")

// BuildFunc constructs a record instance from resolved field values.
type BuildFunc func(fields map[string]any) (any, error)

type staticRecord struct {
	fields []shape.Field
	build  BuildFunc
}

// Static is a manually registered schema table. It assumes registration
// happens once at startup, before any parsing; no locking is done.
type Static struct {
	records map[shape.TypeID]staticRecord
}

// NewStatic returns an empty schema table.
func NewStatic() *Static {
	return &Static{records: make(map[shape.TypeID]staticRecord)}
}

// Register declares a record type with its ordered fields and construction
// callback, and returns the corresponding record shape. A nil build keeps
// the resolved field map as the record value, which makes records trivially
// re-encodable.
func (s *Static) Register(id shape.TypeID, fields []shape.Field, build BuildFunc) *shape.Shape {
	if build == nil {
		build = func(resolved map[string]any) (any, error) {
			out := make(map[string]any, len(resolved))
			for k, v := range resolved {
				out[k] = v
			}

			return out, nil
		}
	}

	s.records[id] = staticRecord{fields: fields, build: build}

	return shape.Record(id)
}

// Fields returns the ordered declared fields of a registered record.
func (s *Static) Fields(id shape.TypeID) ([]shape.Field, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecord, id)
	}

	return rec.fields, nil
}

// Build constructs a registered record from resolved field values.
func (s *Static) Build(id shape.TypeID, fields map[string]any) (any, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecord, id)
	}

	return rec.build(fields)
}
