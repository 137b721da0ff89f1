package constraint

import (
	"fmt"

	"github.com/cottand/sift/frontend/types"
)

// Kind distinguishes the constraint forms the system recognises.
type Kind int

const (
	// KindBind is an equality requirement between two types.
	KindBind Kind = iota + 1
	// KindApplicableFunction is a shape requirement: the left (function
	// shaped) type, applied to an argument, must be satisfied by the right
	// type. Recognised but only queued by this solver; see
	// System.simplifyApplicableFunction.
	KindApplicableFunction
)

func (k Kind) String() string {
	switch k {
	case KindBind:
		return "Bind"
	case KindApplicableFunction:
		return "ApplicableFunction"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Constraint relates two types. Constraints are immutable values.
type Constraint struct {
	Kind  Kind
	Left  types.Type
	Right types.Type
}

func NewBind(left, right types.Type) Constraint {
	return Constraint{Kind: KindBind, Left: left, Right: right}
}

func NewApplicableFunction(left, right types.Type) Constraint {
	return Constraint{Kind: KindApplicableFunction, Left: left, Right: right}
}

func (c Constraint) String() string {
	switch c.Kind {
	case KindBind:
		return fmt.Sprintf("%s == %s", c.Left, c.Right)
	case KindApplicableFunction:
		return fmt.Sprintf("%s applicable-fn %s", c.Left, c.Right)
	default:
		return fmt.Sprintf("%s(%s, %s)", c.Kind, c.Left, c.Right)
	}
}

// Entry wraps a live constraint together with its submission index, which
// identifies it in failure reports and in the deferred queue.
type Entry struct {
	Index      int
	Constraint Constraint
}

func (e Entry) String() string {
	return fmt.Sprintf("#%d %s", e.Index, e.Constraint)
}

// SolveResult is the outcome of matching two types.
type SolveResult int

const (
	// Solved: the constraint holds in the current bindings.
	Solved SolveResult = iota
	// Failure: the constraint can never hold.
	Failure
	// Ambiguous: the constraint cannot be resolved yet, but is not known
	// to fail. Partial progress, not an error.
	Ambiguous
)

func (r SolveResult) String() string {
	switch r {
	case Solved:
		return "solved"
	case Failure:
		return "failure"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("SolveResult(%d)", int(r))
	}
}

// MatchOptions configures a single match.
type MatchOptions struct {
	// GenerateConstraintsWhenAmbiguous lets matchers park unresolved
	// sub-problems as deferred entries on the system instead of
	// propagating Ambiguous to the caller. AddConstraint always sets it.
	GenerateConstraintsWhenAmbiguous bool
}
