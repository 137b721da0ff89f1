package constraint

import (
	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/types"
)

// Solution is a by-value snapshot of a System: its bindings and AST-type
// map at the time CurrentSolution was called.
type Solution struct {
	table    bindingTable
	astTypes map[ast.Node]types.Type
}

// FixedType resolves the type stored for node through the snapshot's
// bindings. It returns false when the node has no entry or its type is
// still an unresolved variable.
func (s Solution) FixedType(node ast.Node) (types.Type, bool) {
	t, ok := s.astTypes[node]
	if !ok {
		return nil, false
	}
	t = s.table.Simplify(t)
	if _, stillVar := types.TypeVar(t); stillVar {
		return nil, false
	}
	return t, true
}

// TypeOf is like FixedType but also returns partially resolved types, which
// may still contain free variables.
func (s Solution) TypeOf(node ast.Node) (types.Type, bool) {
	t, ok := s.astTypes[node]
	if !ok {
		return nil, false
	}
	return s.table.Simplify(t), true
}
