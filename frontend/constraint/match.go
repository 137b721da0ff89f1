package constraint

import (
	"fmt"

	"github.com/cottand/sift/frontend/types"
	"github.com/hashicorp/go-set/v3"
)

// matchTypes simplifies both sides through the current bindings and
// dispatches on whether each side is a variable. It mutates the store as a
// side effect of solving (merges and assignments are never undone).
func (sys *System) matchTypes(left, right types.Type, kind Kind, opts MatchOptions) SolveResult {
	left = sys.Simplify(left)
	right = sys.Simplify(right)

	lv, leftIsVar := types.TypeVar(left)
	rv, rightIsVar := types.TypeVar(right)
	switch {
	case leftIsVar && rightIsVar:
		return sys.matchTypeVariables(lv, rv, kind)
	case leftIsVar:
		return sys.matchTypeVariableAndFixed(lv, right, kind)
	case rightIsVar:
		return sys.matchTypeVariableAndFixed(rv, left, kind)
	default:
		return sys.matchFixedTypes(left, right, kind, opts)
	}
}

// matchTypeVariables handles the variable/variable case. Both sides are
// representatives: Simplify already resolved transfer chains and replaced
// fixed classes by their types.
func (sys *System) matchTypeVariables(a, b *types.TypeVariable, kind Kind) SolveResult {
	if a.ID == b.ID {
		return Solved
	}
	if kind != KindBind {
		panic(fmt.Sprintf("matchTypeVariables: invalid constraint kind %s", kind))
	}
	sys.merge(a, b)
	return Solved
}

// matchTypeVariableAndFixed handles the variable/fixed case: v is a free
// representative and t is not a variable.
func (sys *System) matchTypeVariableAndFixed(v *types.TypeVariable, t types.Type, kind Kind) SolveResult {
	if kind != KindBind {
		panic(fmt.Sprintf("matchTypeVariableAndFixed: invalid constraint kind %s", kind))
	}
	if sys.occurs(v, t) {
		return Failure
	}
	sys.assign(v, t)
	return Solved
}

// matchFixedTypes handles the case where neither side is a variable.
// Constructor pairs this solver does not know how to relate are a contract
// violation, never a silent success: extending the type model means adding
// an arm here per new constructor.
func (sys *System) matchFixedTypes(left, right types.Type, kind Kind, opts MatchOptions) SolveResult {
	switch l := left.(type) {
	case *types.PrimitiveType:
		switch r := right.(type) {
		case *types.PrimitiveType:
			if l.Name == r.Name {
				return Solved
			}
			return Failure
		case *types.FunctionType:
			return Failure
		}
	case *types.FunctionType:
		switch r := right.(type) {
		case *types.FunctionType:
			return sys.matchFunctionTypes(l, r, kind, opts)
		case *types.PrimitiveType:
			return Failure
		}
	}
	panic(fmt.Sprintf("matchFixedTypes: not implemented for %T and %T", left, right))
}

// matchFunctionTypes matches parameter against parameter and result against
// result. Ambiguity accumulates across the two sub-matches; a definite
// failure overrides any accumulated ambiguity.
func (sys *System) matchFunctionTypes(left, right *types.FunctionType, kind Kind, opts MatchOptions) SolveResult {
	ambiguous := false

	switch sys.matchTypes(left.Parameter, right.Parameter, kind, opts) {
	case Failure:
		return Failure
	case Ambiguous:
		ambiguous = true
	}
	switch sys.matchTypes(left.Result, right.Result, kind, opts) {
	case Failure:
		return Failure
	case Ambiguous:
		ambiguous = true
	}

	if ambiguous {
		return Ambiguous
	}
	return Solved
}

// occurs reports whether v occurs inside t. t must already be in simplified
// form, so that a variable hiding behind a transfer chain is not missed.
func (sys *System) occurs(v *types.TypeVariable, t types.Type) bool {
	inside := set.New[types.TypeVarID](1)
	for _, id := range types.Variables(t) {
		inside.Insert(id)
	}
	return inside.Contains(v.ID)
}
