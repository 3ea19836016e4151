package types_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/names"
	"github.com/cottand/typenv/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var showClass = names.Qualify[names.ProperName]("Data.Show", "Show")

func TestTypeString(t *testing.T) {
	testCases := []struct {
		name     string
		typ      types.Type
		expected string
	}{
		{"variable", types.TypeVar{Name: "a"}, "a"},
		{"function", types.Function(types.TyInt, types.TyString), "Prim.Int -> Prim.String"},
		{
			name:     "curried function with higher order argument",
			typ:      types.Functions(types.TyInt, types.Function(types.TyInt, types.TyInt), types.TyBoolean),
			expected: "(Prim.Int -> Prim.Int) -> Prim.Boolean -> Prim.Int",
		},
		{"application", types.Apply(types.TyArray, types.TypeVar{Name: "a"}), "Prim.Array a"},
		{
			name:     "applied argument",
			typ:      types.Function(types.Apply(types.TyArray, types.TypeVar{Name: "a"}), types.TypeVar{Name: "a"}),
			expected: "Prim.Array a -> a",
		},
		{
			name: "constrained forall",
			typ: types.Quantify(types.ConstrainedType{
				Constraint: types.Constraint{Class: showClass, Args: []types.Type{types.TypeVar{Name: "a"}}},
				Body:       types.Function(types.TypeVar{Name: "a"}, types.TyString),
			}, "a"),
			expected: "forall a. Data.Show.Show a => a -> Prim.String",
		},
		{
			name: "open row",
			typ: types.RCons{
				Label: "x", Head: types.TyInt,
				Tail: types.RCons{Label: "y", Head: types.TyString, Tail: types.TypeVar{Name: "r"}},
			},
			expected: "( x :: Prim.Int, y :: Prim.String | r )",
		},
		{"symbol", types.TypeLevelString{Value: "hi"}, `"hi"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.typ.String())
		})
	}
}

func TestAsFunction(t *testing.T) {
	arg, res, ok := types.AsFunction(types.Function(types.TyInt, types.TyChar))
	require.True(t, ok)
	assert.Equal(t, types.Type(types.TyInt), arg)
	assert.Equal(t, types.Type(types.TyChar), res)

	_, _, ok = types.AsFunction(types.Apply(types.TyArray, types.TyInt))
	assert.False(t, ok)
}

func TestIsTypeOrApplied(t *testing.T) {
	applied := types.Apply(types.TyRecord, types.REmpty{})
	assert.True(t, types.IsTypeOrApplied(applied, types.TyRecord.Name))
	assert.True(t, types.IsTypeOrApplied(types.TyRecord, types.TyRecord.Name))
	assert.False(t, types.IsTypeOrApplied(applied, types.TyArray.Name))
}

func TestKinds(t *testing.T) {
	k := types.KindFunction(types.KindType, types.KindRow(types.KindType), types.KindType)
	assert.Equal(t, "# Type -> Type -> Type", k.String())
	assert.Equal(t, 2, types.KindArity(k))
	assert.Equal(t, 0, types.KindArity(types.KindSymbol))
}

func TestTypeJSONRoundTrip(t *testing.T) {
	all := []types.Type{
		types.TypeVar{Name: "a"},
		types.TypeLevelString{Value: "label"},
		types.TyInt,
		types.Function(types.TypeVar{Name: "a"}, types.Apply(types.TyArray, types.TypeVar{Name: "a"})),
		types.Quantify(types.ConstrainedType{
			Constraint: types.Constraint{
				Class: showClass,
				Args:  []types.Type{types.TypeVar{Name: "a"}},
				Data:  &types.PartialConstraintData{Binders: [][]string{{"_"}}, Truncated: true},
			},
			Body: types.TypeVar{Name: "a"},
		}, "a"),
		types.RCons{Label: "x", Head: types.TyInt, Tail: types.REmpty{}},
		types.KindedType{Type: types.TypeVar{Name: "r"}, Kind: types.KindRow(types.KindType)},
	}
	for _, typ := range all {
		t.Run(typ.String(), func(t *testing.T) {
			data, err := json.Marshal(typ)
			require.NoError(t, err)
			back, err := types.UnmarshalType(data)
			require.NoError(t, err)
			assert.Equal(t, typ, back)
		})
	}
}

func TestKindJSONRoundTrip(t *testing.T) {
	all := []types.Kind{
		types.KUnknown{ID: 3},
		types.KindType,
		types.KindRow(types.KindSymbol),
		types.KindFunction(types.KindType, types.KindType, types.KindRow(types.KindType)),
	}
	for _, kind := range all {
		data, err := json.Marshal(kind)
		require.NoError(t, err)
		back, err := types.UnmarshalKind(data)
		require.NoError(t, err)
		assert.Equal(t, kind, back)
	}

	none, err := types.UnmarshalOptionalKind([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestUnmarshalUnknownTags(t *testing.T) {
	_, err := types.UnmarshalType([]byte(`{"tag":"Skolem","contents":[]}`))
	var decodeErr *enverr.Decode
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, enverr.UnknownTypeTag, decodeErr.Code)
	assert.Equal(t, "Skolem", decodeErr.Value)

	_, err = types.UnmarshalKind([]byte(`"Type"`))
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, enverr.UnknownKindTag, decodeErr.Code)

	_, err = types.UnmarshalType([]byte(`{"tag":"TypeApp","contents":[{"tag":"REmpty"}]}`))
	assert.Error(t, err)
}
