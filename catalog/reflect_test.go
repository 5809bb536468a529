package catalog_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shape-caster/catalog"
	"shape-caster/parse"
	"shape-caster/shape"
)

type server struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type document struct {
	Name    string         `json:"name"`
	Debug   *bool          `json:"debug"`
	Tags    []string       `json:"tags"`
	Server  server         `json:"server"`
	Limits  map[string]int `json:"limits"`
	Window  [2]int         `json:"window"`
	private string         // must be skipped by derivation
	Skipped string         `json:"-"`
}

func TestShapeOf_Kinds(t *testing.T) {
	cat := catalog.NewReflect()

	tests := []struct {
		name string
		t    reflect.Type
		kind shape.Kind
	}{
		{"string scalar", reflect.TypeOf((*string)(nil)).Elem(), shape.KindScalar},
		{"pointer is optional", reflect.TypeOf((**int)(nil)).Elem(), shape.KindOptional},
		{"slice is list", reflect.TypeOf((*[]string)(nil)).Elem(), shape.KindList},
		{"array is fixed tuple", reflect.TypeOf((*[3]int)(nil)).Elem(), shape.KindTuple},
		{"map is map", reflect.TypeOf((*map[string]int)(nil)).Elem(), shape.KindMap},
		{"struct is record", reflect.TypeOf((*server)(nil)).Elem(), shape.KindRecord},
		{"empty interface is any", reflect.TypeOf((*any)(nil)).Elem(), shape.KindScalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := cat.ShapeOf(tt.t)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind)
		})
	}
}

func TestShapeOf_RecordFields(t *testing.T) {
	cat := catalog.NewReflect()

	s, err := catalog.ShapeFor[document](cat)
	require.NoError(t, err)
	require.Equal(t, shape.KindRecord, s.Kind)

	fields, err := cat.Fields(s.Record)
	require.NoError(t, err)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	// Declaration order, json tag names, no unexported or excluded fields.
	assert.Equal(t, []string{"name", "debug", "tags", "server", "limits", "window"}, names)
}

func TestShapeOf_Cached(t *testing.T) {
	cat := catalog.NewReflect()

	first, err := catalog.ShapeFor[document](cat)
	require.NoError(t, err)

	second, err := catalog.ShapeFor[document](cat)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

type node struct {
	Value int   `json:"value"`
	Next  *node `json:"next"`
}

func TestShapeOf_CyclicTypeRejected(t *testing.T) {
	cat := catalog.NewReflect()

	_, err := catalog.ShapeFor[node](cat)
	assert.ErrorIs(t, err, catalog.ErrCyclicType)
}

func TestShapeOf_UnsupportedType(t *testing.T) {
	cat := catalog.NewReflect()

	_, err := cat.ShapeOf(reflect.TypeOf((*chan int)(nil)).Elem())
	assert.ErrorIs(t, err, catalog.ErrUnsupportedType)
}

func TestFields_UnknownRecord(t *testing.T) {
	cat := catalog.NewReflect()

	_, err := cat.Fields(shape.TypeID{Name: "Nowhere"})
	assert.ErrorIs(t, err, catalog.ErrUnknownRecord)
}

func TestReflect_EndToEnd(t *testing.T) {
	cat := catalog.NewReflect()

	factory, err := parse.New(cat, cat)
	require.NoError(t, err)

	parser, err := factory.ParserFor(reflect.TypeOf((*document)(nil)).Elem())
	require.NoError(t, err)

	v, err := parser(map[string]any{
		"name": "staging",
		"tags": []any{"eu", "beta"},
		"server": map[string]any{
			"host": "localhost",
			"port": 8080,
		},
		"limits": map[string]any{"rps": 100},
		"window": []any{5, 60},
	})
	require.NoError(t, err)

	doc, ok := v.(document)
	require.True(t, ok)

	assert.Equal(t, document{
		Name:   "staging",
		Tags:   []string{"eu", "beta"},
		Server: server{Host: "localhost", Port: 8080},
		Limits: map[string]int{"rps": 100},
		Window: [2]int{5, 60},
	}, doc)
	assert.Nil(t, doc.Debug)
}

func TestReflect_AcceptsBuiltInstance(t *testing.T) {
	cat := catalog.NewReflect()

	factory, err := parse.New(cat, cat)
	require.NoError(t, err)

	parser, err := factory.ParserFor(reflect.TypeOf((*server)(nil)).Elem())
	require.NoError(t, err)

	// A typed record shape still passes an already-built instance through
	// the conformance fallback.
	v, err := parser(server{Host: "localhost", Port: 8080})
	require.NoError(t, err)
	assert.Equal(t, server{Host: "localhost", Port: 8080}, v)

	_, err = parser(42)
	assert.ErrorIs(t, err, parse.ErrTypeMismatch)
}

func TestReflect_EndToEndFailures(t *testing.T) {
	cat := catalog.NewReflect()

	factory, err := parse.New(cat, cat)
	require.NoError(t, err)

	parser, err := factory.ParserFor(reflect.TypeOf((*server)(nil)).Elem())
	require.NoError(t, err)

	_, err = parser(map[string]any{"host": "localhost"})
	assert.ErrorIs(t, err, parse.ErrKeyMissing)

	_, err = parser(map[string]any{"host": "localhost", "port": "http"})
	require.ErrorIs(t, err, parse.ErrTypeMismatch)

	var perr *parse.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "port", perr.Path)
}

func TestStatic_UnknownRecordIsConstructionFailure(t *testing.T) {
	cat := catalog.NewStatic()

	factory, err := parse.New(cat, cat)
	require.NoError(t, err)

	_, err = factory.Parser(shape.Record(shape.TypeID{Name: "Ghost"}))(map[string]any{})
	assert.ErrorIs(t, err, parse.ErrConstruction)
}
