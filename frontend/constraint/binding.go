package constraint

import (
	"fmt"

	"github.com/cottand/sift/frontend/types"
)

// binding is what the store knows about one type variable.
//
// A variable is a representative iff its binding is free or fixed. A
// transfer binding forwards to another variable whose chain always ends at
// a representative; chains are kept short by eager rewriting during merge.
type binding interface {
	bindingVariant()
}

type free struct{}

type fixed struct {
	typ types.Type // never a *types.TypeVariable
}

type transfer struct {
	target *types.TypeVariable
}

func (free) bindingVariant()     {}
func (fixed) bindingVariant()    {}
func (transfer) bindingVariant() {}

// bindingTable is the union-find-plus-assignment store: a dense table from
// variable ID to binding, with the variables allocated so far alongside it.
//
// Invariants kept by merge and assign:
//   - a transfer target always has a smaller ID than the transferring
//     variable, so the representative of a class is its minimum-ID member
//   - transfer chains are acyclic and finite
//   - only a free representative is ever assigned a fixed type
type bindingTable struct {
	vars     []*types.TypeVariable
	bindings []binding // indexed by TypeVarID - 1
}

func (tbl *bindingTable) newVariable() *types.TypeVariable {
	v := &types.TypeVariable{ID: types.TypeVarID(len(tbl.vars) + 1)}
	tbl.vars = append(tbl.vars, v)
	tbl.bindings = append(tbl.bindings, free{})
	return v
}

func (tbl *bindingTable) binding(v *types.TypeVariable) binding {
	i := int(v.ID) - 1
	if i < 0 || i >= len(tbl.bindings) {
		panic(fmt.Sprintf("variable %s does not belong to this constraint system", v))
	}
	return tbl.bindings[i]
}

func (tbl *bindingTable) setBinding(v *types.TypeVariable, b binding) {
	tbl.bindings[int(v.ID)-1] = b
}

// Representative returns the terminal variable of v's transfer chain,
// regardless of whether it carries a fixed type.
func (tbl *bindingTable) Representative(v *types.TypeVariable) *types.TypeVariable {
	for {
		t, ok := tbl.binding(v).(transfer)
		if !ok {
			return v
		}
		v = t.target
	}
}

func (tbl *bindingTable) IsRepresentative(v *types.TypeVariable) bool {
	return tbl.Representative(v).ID == v.ID
}

// FixedType resolves v through its transfer chain and returns the fixed
// type of its class, if one has been assigned.
func (tbl *bindingTable) FixedType(v *types.TypeVariable) (types.Type, bool) {
	f, ok := tbl.binding(tbl.Representative(v)).(fixed)
	if !ok {
		return nil, false
	}
	return f.typ, true
}

// fixedOrRepresentative resolves v to its class's fixed type when there is
// one, and to the class representative otherwise.
func (tbl *bindingTable) fixedOrRepresentative(v *types.TypeVariable) types.Type {
	rep := tbl.Representative(v)
	if f, ok := tbl.binding(rep).(fixed); ok {
		return f.typ
	}
	return rep
}

// Simplify substitutes every variable in t by its fixed type or
// representative, to fixpoint. The result contains no transfer-bound
// variable and no representative that already carries a fixed type, and is
// a pure function of the current bindings: Simplify(Simplify(t)) == Simplify(t).
func (tbl *bindingTable) Simplify(t types.Type) types.Type {
	return types.Transform(t, func(u types.Type) types.Type {
		tv, ok := types.TypeVar(u)
		if !ok {
			return u
		}
		resolved := tbl.fixedOrRepresentative(tv)
		if _, stillVar := types.TypeVar(resolved); stillVar {
			return resolved
		}
		// the fixed type may itself mention variables bound since assignment
		return tbl.Simplify(resolved)
	})
}

// merge unifies the classes of two free representatives. The variable with
// the larger ID becomes a transfer to the smaller, and every variable that
// transferred to the larger is rewritten to transfer to the smaller, so
// chains stay one hop long after a merge.
func (tbl *bindingTable) merge(a, b *types.TypeVariable) {
	if _, ok := tbl.binding(a).(free); !ok {
		panic(fmt.Sprintf("merge: %s is not a free representative", a))
	}
	if _, ok := tbl.binding(b).(free); !ok {
		panic(fmt.Sprintf("merge: %s is not a free representative", b))
	}
	if a.ID == b.ID {
		return
	}
	lo, hi := a, b
	if lo.ID > hi.ID {
		lo, hi = hi, lo
	}
	tbl.setBinding(hi, transfer{target: lo})
	for _, other := range tbl.vars {
		if t, ok := tbl.binding(other).(transfer); ok && t.target.ID == hi.ID {
			tbl.setBinding(other, transfer{target: lo})
		}
	}
}

// assign fixes the type of a free representative. The occurs check is the
// matcher's responsibility, performed before calling.
func (tbl *bindingTable) assign(v *types.TypeVariable, t types.Type) {
	if _, isVar := types.TypeVar(t); isVar {
		panic(fmt.Sprintf("assign: %s may not be fixed to another variable %s", v, t))
	}
	if _, ok := tbl.binding(v).(free); !ok {
		panic(fmt.Sprintf("assign: %s is not a free representative", v))
	}
	tbl.setBinding(v, fixed{typ: t})
}

// clone copies the table. Bindings and variables are immutable values, so a
// shallow copy of both slices snapshots the whole store.
func (tbl *bindingTable) clone() bindingTable {
	return bindingTable{
		vars:     append([]*types.TypeVariable(nil), tbl.vars...),
		bindings: append([]binding(nil), tbl.bindings...),
	}
}
