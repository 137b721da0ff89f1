package constraint_test

import (
	"strings"
	"testing"

	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/constraint"
	"github.com/cottand/sift/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	intType  = types.NewPrimitive("Int")
	boolType = types.NewPrimitive("Bool")
)

func TestBindTwoVariables(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()

	result := sys.AddConstraint(constraint.NewBind(v1, v2))
	require.Equal(t, constraint.Solved, result)

	assert.Equal(t, v1, sys.Representative(v1))
	assert.Equal(t, v1, sys.Representative(v2))
	_, fixed := sys.FixedType(v1)
	assert.False(t, fixed)
	_, fixed = sys.FixedType(v2)
	assert.False(t, fixed)
}

func TestBindChainKeepsMinimumRepresentative(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()
	v3 := sys.CreateTypeVariable()

	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v3, v1)))
	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v2, v3)))

	for _, v := range []*types.TypeVariable{v1, v2, v3} {
		assert.Equal(t, v1, sys.Representative(v))
		_, fixed := sys.FixedType(v)
		assert.False(t, fixed)
	}
}

func TestBindVariableToPrimitive(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()

	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v1, intType)))

	fixedType, ok := sys.FixedType(v1)
	require.True(t, ok)
	assert.Equal(t, "Int", fixedType.String())
	assert.Equal(t, "Int", sys.Simplify(v1).String())
}

func TestBindOccursCheckFailure(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()

	result := sys.AddConstraint(constraint.NewBind(v1, types.NewFunction(v1, intType)))
	assert.Equal(t, constraint.Failure, result)

	failed, ok := sys.FailedConstraint()
	require.True(t, ok)
	assert.Equal(t, 0, failed.Index)
	assert.Equal(t, constraint.KindBind, failed.Constraint.Kind)
}

func TestBindMismatchedPrimitives(t *testing.T) {
	sys := constraint.NewSystem()
	result := sys.AddConstraint(constraint.NewBind(intType, types.NewPrimitive("String")))
	assert.Equal(t, constraint.Failure, result)
	_, ok := sys.FailedConstraint()
	assert.True(t, ok)
}

func TestBindFunctionTypesPropagates(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()

	result := sys.AddConstraint(constraint.NewBind(
		types.NewFunction(v1, v1),
		types.NewFunction(intType, v2),
	))
	require.Equal(t, constraint.Solved, result)

	for _, v := range []*types.TypeVariable{v1, v2} {
		fixedType, ok := sys.FixedType(v)
		require.True(t, ok)
		assert.Equal(t, "Int", fixedType.String())
	}
}

func TestBindIsReflexiveWithoutMutation(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()
	for _, typ := range []types.Type{
		intType,
		types.NewFunction(intType, boolType),
		v1,
	} {
		require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(typ, typ)))
	}
	_, fixed := sys.FixedType(v1)
	assert.False(t, fixed)
	assert.True(t, sys.IsRepresentative(v1))
}

func TestFirstFailureIsDurable(t *testing.T) {
	sys := constraint.NewSystem()

	require.Equal(t, constraint.Failure, sys.AddConstraint(constraint.NewBind(intType, boolType)))
	first, ok := sys.FailedConstraint()
	require.True(t, ok)

	// a second failure is reported to the caller but not recorded
	require.Equal(t, constraint.Failure,
		sys.AddConstraint(constraint.NewBind(boolType, types.NewPrimitive("String"))))
	still, ok := sys.FailedConstraint()
	require.True(t, ok)
	assert.Equal(t, first.Index, still.Index)
	assert.True(t, types.Equal(first.Constraint.Left, still.Constraint.Left))
}

func TestPropagationThroughAssignment(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()
	v3 := sys.CreateTypeVariable()

	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v1, v2)))
	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v2, v3)))
	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v3, intType)))

	assert.True(t, sys.AllVariablesHaveFixedType())
	for _, v := range []*types.TypeVariable{v1, v2, v3} {
		fixedType, ok := sys.FixedType(v)
		require.True(t, ok)
		assert.Equal(t, "Int", fixedType.String())
	}
}

func TestAllVariablesHaveFixedType(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()
	assert.False(t, sys.AllVariablesHaveFixedType())

	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v1, intType)))
	assert.False(t, sys.AllVariablesHaveFixedType())

	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v2, v1)))
	assert.True(t, sys.AllVariablesHaveFixedType())
}

func TestApplicableFunctionIsDeferred(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()

	c := constraint.NewApplicableFunction(types.NewFunction(v1, v2), v1)
	result := sys.AddConstraint(c)
	assert.Equal(t, constraint.Solved, result)

	_, failed := sys.FailedConstraint()
	assert.False(t, failed)

	deferred := sys.DeferredConstraints()
	require.Len(t, deferred, 1)
	assert.Equal(t, constraint.KindApplicableFunction, deferred[0].Constraint.Kind)

	// the deferral makes no progress on the variables involved
	_, fixed := sys.FixedType(v1)
	assert.False(t, fixed)
}

func TestAddAmbiguousConstraintQueuesWithoutSolving(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()

	sys.AddAmbiguousConstraint(constraint.NewBind(v1, intType))

	deferred := sys.DeferredConstraints()
	require.Len(t, deferred, 1)
	_, fixed := sys.FixedType(v1)
	assert.False(t, fixed, "a queued entry must not have been solved")
}

func TestASTTypeMapAndFallbacks(t *testing.T) {
	sys := constraint.NewSystem()
	lit := &ast.IntegerLiteralExpr{Value: "1"}
	decl := &ast.VariableDecl{Name: "x"}

	_, ok := sys.ASTType(lit)
	assert.False(t, ok)

	v := sys.CreateTypeVariableFor(lit)
	got, ok := sys.ASTType(lit)
	require.True(t, ok)
	assert.True(t, types.Equal(v, got))

	// context nodes fall back to their interface type
	decl.SetInterfaceType(boolType)
	got, ok = sys.ASTType(decl)
	require.True(t, ok)
	assert.Equal(t, "Bool", got.String())

	// expression nodes fall back to their declared type
	lit2 := &ast.IntegerLiteralExpr{Value: "2"}
	lit2.SetType(intType)
	got, ok = sys.ASTType(lit2)
	require.True(t, ok)
	assert.Equal(t, "Int", got.String())

	// SetASTType overwrites
	sys.SetASTType(lit, intType)
	got, _ = sys.ASTType(lit)
	assert.Equal(t, "Int", got.String())
}

func TestNormalizeRewritesASTTypes(t *testing.T) {
	sys := constraint.NewSystem()
	lit := &ast.IntegerLiteralExpr{Value: "1"}
	v := sys.CreateTypeVariableFor(lit)
	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v, intType)))

	sys.Normalize()
	got, ok := sys.ASTType(lit)
	require.True(t, ok)
	assert.Equal(t, "Int", got.String())
}

func TestSolutionSnapshotIsIsolated(t *testing.T) {
	sys := constraint.NewSystem()
	lit := &ast.IntegerLiteralExpr{Value: "1"}
	v := sys.CreateTypeVariableFor(lit)

	before := sys.CurrentSolution()
	_, ok := before.FixedType(lit)
	assert.False(t, ok, "unsolved variable must not resolve in the snapshot")

	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v, intType)))
	after := sys.CurrentSolution()

	// the earlier snapshot still sees the unsolved state
	_, ok = before.FixedType(lit)
	assert.False(t, ok)

	got, ok := after.FixedType(lit)
	require.True(t, ok)
	assert.Equal(t, "Int", got.String())
}

func TestSolutionResolvesThroughBindings(t *testing.T) {
	sys := constraint.NewSystem()
	closure := &ast.IntegerLiteralExpr{Value: "9"}
	v1 := sys.CreateTypeVariableFor(closure)
	v2 := sys.CreateTypeVariable()

	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v1, types.NewFunction(v2, v2))))
	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v2, intType)))

	solution := sys.CurrentSolution()
	got, ok := solution.FixedType(closure)
	require.True(t, ok)
	assert.Equal(t, "(Int) -> Int", got.String())
}

func TestDumpRendersState(t *testing.T) {
	sys := constraint.NewSystem()
	v1 := sys.CreateTypeVariable()
	v2 := sys.CreateTypeVariable()
	v3 := sys.CreateTypeVariable()
	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v1, intType)))
	require.Equal(t, constraint.Solved, sys.AddConstraint(constraint.NewBind(v3, v2)))
	sys.AddAmbiguousConstraint(constraint.NewApplicableFunction(v2, v3))

	sb := &strings.Builder{}
	sys.Dump(sb)
	out := sb.String()
	assert.Contains(t, out, "$T1 = Int")
	assert.Contains(t, out, "$T3 -> $T2")
	assert.Contains(t, out, "unresolved: $T2 $T3")
	assert.Contains(t, out, "deferred constraints (1)")
}
