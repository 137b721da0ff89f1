package constraint

import (
	"testing"

	"github.com/cottand/sift/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	intType  = types.NewPrimitive("Int")
	boolType = types.NewPrimitive("Bool")
)

func TestMatchEqualPrimitives(t *testing.T) {
	sys := NewSystem()
	result := sys.matchTypes(intType, types.NewPrimitive("Int"), KindBind, MatchOptions{})
	assert.Equal(t, Solved, result)
}

func TestMatchDifferentPrimitives(t *testing.T) {
	sys := NewSystem()
	result := sys.matchTypes(intType, types.NewPrimitive("String"), KindBind, MatchOptions{})
	assert.Equal(t, Failure, result)
}

func TestMatchPrimitiveAgainstFunction(t *testing.T) {
	sys := NewSystem()
	fn := types.NewFunction(intType, intType)
	assert.Equal(t, Failure, sys.matchTypes(intType, fn, KindBind, MatchOptions{}))
	assert.Equal(t, Failure, sys.matchTypes(fn, intType, KindBind, MatchOptions{}))
}

func TestMatchFunctionTypesComponentwise(t *testing.T) {
	sys := NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()

	left := types.NewFunction(v1, v1)
	right := types.NewFunction(intType, v2)
	result := sys.matchTypes(left, right, KindBind, MatchOptions{})
	require.Equal(t, Solved, result)

	for _, v := range []*types.TypeVariable{v1, v2} {
		fixedType, ok := sys.FixedType(v)
		require.True(t, ok)
		assert.Equal(t, "Int", fixedType.String())
	}
}

func TestMatchFunctionTypesFailureInResult(t *testing.T) {
	sys := NewSystem()
	left := types.NewFunction(intType, intType)
	right := types.NewFunction(intType, boolType)
	assert.Equal(t, Failure, sys.matchTypes(left, right, KindBind, MatchOptions{}))
}

func TestMatchVariablesMergesTowardsSmallerID(t *testing.T) {
	sys := NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()
	result := sys.matchTypes(v2, v1, KindBind, MatchOptions{})
	require.Equal(t, Solved, result)
	assert.Equal(t, v1, sys.Representative(v2))
}

func TestMatchSameVariableIsSolvedWithoutMutation(t *testing.T) {
	sys := NewSystem()
	v1 := sys.CreateTypeVariable()
	result := sys.matchTypes(v1, v1, KindBind, MatchOptions{})
	assert.Equal(t, Solved, result)
	assert.True(t, sys.IsRepresentative(v1))
	_, fixed := sys.FixedType(v1)
	assert.False(t, fixed)
}

func TestMatchSeesThroughBindings(t *testing.T) {
	sys := NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()
	sys.merge(v2, v1)
	sys.assign(v1, intType)

	// v2 simplifies to Int, so matching against Bool must fail
	assert.Equal(t, Failure, sys.matchTypes(v2, boolType, KindBind, MatchOptions{}))
	assert.Equal(t, Solved, sys.matchTypes(v2, intType, KindBind, MatchOptions{}))
}

func TestOccursCheckFails(t *testing.T) {
	sys := NewSystem()
	v1 := sys.CreateTypeVariable()
	inside := types.NewFunction(v1, intType)
	assert.Equal(t, Failure, sys.matchTypes(v1, inside, KindBind, MatchOptions{}))
	// the failed match must not have bound v1
	_, fixed := sys.FixedType(v1)
	assert.False(t, fixed)
}

func TestOccursCheckSeesThroughTransfers(t *testing.T) {
	sys := NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()
	sys.merge(v2, v1)

	// v2 resolves to v1, so v1 occurs in (v2) -> Int
	inside := types.NewFunction(v2, intType)
	assert.Equal(t, Failure, sys.matchTypes(v1, inside, KindBind, MatchOptions{}))
}

func TestOccursCheckAllowsUnrelatedVariables(t *testing.T) {
	sys := NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()
	inside := types.NewFunction(v2, intType)
	require.Equal(t, Solved, sys.matchTypes(v1, inside, KindBind, MatchOptions{}))
	fixedType, ok := sys.FixedType(v1)
	require.True(t, ok)
	assert.Equal(t, "($T2) -> Int", fixedType.String())
}

func TestApplicableFunctionKindIsInvalidInVariableMatches(t *testing.T) {
	sys := NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()
	assert.Panics(t, func() {
		sys.matchTypeVariables(v1, v2, KindApplicableFunction)
	})
	assert.Panics(t, func() {
		sys.matchTypeVariableAndFixed(v1, intType, KindApplicableFunction)
	})
}

func TestMatchSymmetry(t *testing.T) {
	mkSys := func() (*System, *types.TypeVariable, *types.TypeVariable) {
		sys := NewSystem()
		return sys, sys.CreateTypeVariable(), sys.CreateTypeVariable()
	}

	forward, fv1, fv2 := mkSys()
	require.Equal(t, Solved, forward.matchTypes(fv1, fv2, KindBind, MatchOptions{}))
	backward, bv1, bv2 := mkSys()
	require.Equal(t, Solved, backward.matchTypes(bv2, bv1, KindBind, MatchOptions{}))

	assert.Equal(t, forward.Representative(fv2).ID, backward.Representative(bv2).ID)
	assert.Equal(t, forward.Representative(fv1).ID, backward.Representative(bv1).ID)
}
