package constraint

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/types"
	"github.com/cottand/sift/internal/log"
)

// System is the constraint-solver façade. It owns the binding store, the
// AST-type map, and the deferred constraint queue as exclusively mutable
// state; all operations are synchronous and single-threaded.
//
// Constraints are solved eagerly as they arrive. The system never
// backtracks: merges and assignments are permanent.
type System struct {
	bindingTable
	astTypes  map[ast.Node]types.Type
	deferred  []Entry
	submitted int
	failed    *Entry
	logger    *slog.Logger
}

func NewSystem() *System {
	return &System{
		astTypes: make(map[ast.Node]types.Type),
		logger:   log.DefaultLogger.With("section", "constraint"),
	}
}

// CreateTypeVariable allocates a fresh, free type variable. IDs start at 1
// and grow in allocation order.
func (sys *System) CreateTypeVariable() *types.TypeVariable {
	v := sys.newVariable()
	sys.logger.Debug("allocated type variable", "var", v)
	return v
}

// CreateTypeVariableFor allocates a fresh variable and registers it as
// node's AST type.
func (sys *System) CreateTypeVariableFor(node ast.Node) *types.TypeVariable {
	v := sys.newVariable()
	sys.astTypes[node] = v
	return v
}

// ASTType returns the type currently associated with node: the AST-type map
// entry when there is one, otherwise the node's own type accessor (an
// expression's declared type, or a context node's interface type).
func (sys *System) ASTType(node ast.Node) (types.Type, bool) {
	if t, ok := sys.astTypes[node]; ok {
		return t, true
	}
	switch n := node.(type) {
	case ast.Expr:
		if t := n.DeclaredType(); t != nil {
			return t, true
		}
	case ast.ContextNode:
		if t := n.InterfaceType(); t != nil {
			return t, true
		}
	}
	return nil, false
}

// SetASTType inserts or overwrites node's entry in the AST-type map.
func (sys *System) SetASTType(node ast.Node, t types.Type) {
	sys.astTypes[node] = t
}

// AddConstraint submits c and solves it eagerly. The first submission that
// fails is recorded durably and stays queryable through FailedConstraint;
// later failures are still reported in the return value. A top-level
// Ambiguous result means the caller submitted a constraint this solver has
// no driver for, which is a programmer error.
func (sys *System) AddConstraint(c Constraint) SolveResult {
	opts := MatchOptions{GenerateConstraintsWhenAmbiguous: true}
	e := Entry{Index: sys.submitted, Constraint: c}
	sys.submitted++

	var result SolveResult
	switch c.Kind {
	case KindBind:
		result = sys.matchTypes(c.Left, c.Right, KindBind, opts)
	case KindApplicableFunction:
		result = sys.simplifyApplicableFunction(e, opts)
	default:
		panic(fmt.Sprintf("AddConstraint: unknown constraint kind %s", c.Kind))
	}

	switch result {
	case Failure:
		sys.logger.Debug("constraint failed", "entry", e.String())
		if sys.failed == nil {
			sys.failed = &e
		}
	case Ambiguous:
		panic(fmt.Sprintf("AddConstraint: top-level ambiguity for %s", e))
	}
	return result
}

// simplifyApplicableFunction is the extension slot for the
// applicable-function constraint. This solver has no driver that revisits
// deferred entries, so the obligation is parked on the queue untouched;
// parking is not a failure.
func (sys *System) simplifyApplicableFunction(e Entry, opts MatchOptions) SolveResult {
	if !opts.GenerateConstraintsWhenAmbiguous {
		return Ambiguous
	}
	sys.deferred = append(sys.deferred, e)
	sys.logger.Debug("deferred applicable-function constraint", "entry", e.String())
	return Solved
}

// AddAmbiguousConstraint appends c to the live constraint queue without
// attempting to solve it. Low-level hook for matchers that wish to defer.
func (sys *System) AddAmbiguousConstraint(c Constraint) {
	e := Entry{Index: sys.submitted, Constraint: c}
	sys.submitted++
	sys.deferred = append(sys.deferred, e)
}

// Normalize rewrites every AST-type entry to its simplified form under the
// current bindings.
func (sys *System) Normalize() {
	for node, t := range sys.astTypes {
		sys.astTypes[node] = sys.Simplify(t)
	}
}

// AllVariablesHaveFixedType reports whether every allocated variable
// resolves to a fixed type through its transfer chain.
func (sys *System) AllVariablesHaveFixedType() bool {
	for _, v := range sys.vars {
		if _, ok := sys.FixedType(v); !ok {
			return false
		}
	}
	return true
}

// FailedConstraint returns the first constraint whose submission failed.
func (sys *System) FailedConstraint() (Entry, bool) {
	if sys.failed == nil {
		return Entry{}, false
	}
	return *sys.failed, true
}

// DeferredConstraints returns a copy of the queue of parked entries.
func (sys *System) DeferredConstraints() []Entry {
	return append([]Entry(nil), sys.deferred...)
}

// CurrentSolution snapshots the bindings and the AST-type map by value. The
// live system may keep mutating without affecting the snapshot.
func (sys *System) CurrentSolution() Solution {
	return Solution{
		table:    sys.clone(),
		astTypes: maps.Clone(sys.astTypes),
	}
}
