package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shape-caster/shape"
	"shape-caster/validate"
)

func TestRegistry_CoreKindsAreLocked(t *testing.T) {
	r := validate.NewRegistry()

	reject := func(any, *shape.Shape) bool { return false }

	for _, kind := range []shape.Kind{shape.KindList, shape.KindTuple, shape.KindMap} {
		err := r.Extend(kind, reject)
		assert.ErrorIs(t, err, validate.ErrCoreKind, kind.String())
	}
}

func TestRegistry_ExtensionKind(t *testing.T) {
	const kindVersion = shape.Kind(shape.KindTotal)

	r := validate.NewRegistry()
	target := &shape.Shape{Kind: kindVersion}

	// Fail closed before registration.
	assert.False(t, r.Validate([]any{1, 2, 3}, target))

	err := r.Extend(kindVersion, func(resolved any, _ *shape.Shape) bool {
		seq, ok := resolved.([]any)
		return ok && len(seq) == 3
	})
	require.NoError(t, err)

	assert.True(t, r.Validate([]any{1, 2, 3}, target))
	assert.False(t, r.Validate([]any{1}, target))
}

func TestRegistry_BuiltinList(t *testing.T) {
	r := validate.NewRegistry()
	target := shape.List(shape.ScalarOf[int]())

	assert.True(t, r.Validate([]any{1, 2}, target))
	assert.False(t, r.Validate([]any{1, "x"}, target))
	assert.False(t, r.Validate("not a list", target))
}

func TestRegistry_BuiltinTuple(t *testing.T) {
	r := validate.NewRegistry()

	fixed := shape.Tuple(shape.ScalarOf[int](), shape.ScalarOf[string]())
	assert.True(t, r.Validate([]any{1, "x"}, fixed))
	assert.False(t, r.Validate([]any{1}, fixed))
	assert.False(t, r.Validate([]any{"x", 1}, fixed))

	variadic := shape.TupleOf(shape.ScalarOf[int]())
	assert.True(t, r.Validate([]any{}, variadic))
	assert.True(t, r.Validate([]any{1, 2, 3, 4}, variadic))
	assert.False(t, r.Validate([]any{1, "x"}, variadic))
}

func TestRegistry_BuiltinMap(t *testing.T) {
	r := validate.NewRegistry()
	target := shape.Map(shape.ScalarOf[string](), shape.ScalarOf[int]())

	assert.True(t, r.Validate(map[any]any{"a": 1}, target))
	assert.True(t, r.Validate(map[string]any{"a": 1}, target))
	assert.False(t, r.Validate(map[any]any{"a": "x"}, target))
	assert.False(t, r.Validate(map[any]any{1: 2}, target))
	assert.False(t, r.Validate([]any{}, target))
}

func TestRegistry_NullableValues(t *testing.T) {
	r := validate.NewRegistry()
	target := shape.Map(
		shape.ScalarOf[string](),
		shape.Optional(shape.ScalarOf[int]()),
	)

	assert.True(t, r.Validate(map[any]any{"a": 1, "b": nil}, target))
}
