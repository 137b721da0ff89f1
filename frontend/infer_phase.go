package frontend

import (
	"log/slog"

	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/constraint"
	"github.com/cottand/sift/frontend/sifterr"
	"github.com/cottand/sift/frontend/types"
	"github.com/cottand/sift/internal/log"
)

var intLiteralType = types.NewPrimitive("Int")

// generator walks expressions allocating one type variable per node and
// submitting equality constraints derived from each node's shape.
type generator struct {
	sys    *constraint.System
	diags  sifterr.Diagnostics
	logger *slog.Logger
}

// constrain submits c, turning an eager failure into a diagnostic at the
// node that produced the constraint: an occurs-check error when the
// simplified left side is still a variable, a type mismatch otherwise. The system itself
// durably remembers only the first failure; the diagnostics list gets all
// of them.
func (g *generator) constrain(c constraint.Constraint, at ast.Positioner) {
	if g.sys.AddConstraint(c) != constraint.Failure {
		return
	}
	left := g.sys.Simplify(c.Left)
	right := g.sys.Simplify(c.Right)
	if _, occursFailure := types.TypeVar(left); occursFailure {
		g.diags = append(g.diags, sifterr.OccursCheckError{
			Span:     ast.SpanOf(at),
			Variable: left,
			Inside:   right,
		})
		return
	}
	g.diags = append(g.diags, sifterr.TypeMismatchError{
		Span:     ast.SpanOf(at),
		Expected: left,
		Actual:   right,
	})
}

// genExpr returns the type variable standing for e.
func (g *generator) genExpr(e ast.Expr) *types.TypeVariable {
	tv := g.sys.CreateTypeVariableFor(e)
	switch e := e.(type) {
	case *ast.IntegerLiteralExpr:
		g.constrain(constraint.NewBind(tv, intLiteralType), e)

	case *ast.DeclRefExpr:
		if t, ok := g.sys.ASTType(e.Target); ok {
			g.constrain(constraint.NewBind(tv, t), e)
		} else {
			// the target declaration was itself broken; leave tv free
			g.logger.Debug("reference to untyped declaration", "name", e.Name)
		}

	case *ast.ClosureExpr:
		paramVar := g.sys.CreateTypeVariableFor(e.Param)
		if e.Param.Annotation != nil {
			g.constrain(constraint.NewBind(paramVar, e.Param.Annotation.ConstructType()), e.Param)
		}
		bodyVar := g.genExpr(e.Body)
		g.constrain(constraint.NewBind(tv, types.NewFunction(paramVar, bodyVar)), e)

	case *ast.CallExpr:
		fnVar := g.genExpr(e.Fn)
		argVar := g.genExpr(e.Arg)
		g.constrain(constraint.NewBind(fnVar, types.NewFunction(argVar, tv)), e)

	case *ast.UnresolvedDeclRefExpr:
		// already diagnosed during resolution; tv stays free

	default:
		g.logger.Warn("no constraints for expression", "expr", ast.ExprString(e))
	}
	return tv
}

// inferPhase runs constraint generation and solving over every declaration
// of file, then projects the solution back onto the AST: every expression
// and declaration ends up with its simplified inferred type.
func inferPhase(file *ast.SourceFile, sys *constraint.System) sifterr.Diagnostics {
	g := &generator{
		sys:    sys,
		logger: log.DefaultLogger.With("section", "frontend.infer"),
	}

	for _, decl := range file.Declarations {
		if decl.Init == nil {
			continue
		}
		initVar := g.genExpr(decl.Init)
		if decl.Annotation != nil {
			annotated := decl.Annotation.ConstructType()
			g.constrain(constraint.NewBind(initVar, annotated), decl)
			decl.SetInterfaceType(annotated)
		} else {
			// later declarations unify against this variable
			decl.SetInterfaceType(initVar)
		}
		g.sys.SetASTType(decl, initVar)
	}

	sys.Normalize()
	solution := sys.CurrentSolution()
	applySolution(file, solution, sys)

	for _, decl := range file.Declarations {
		if decl.Init == nil {
			continue
		}
		if iface := decl.InterfaceType(); iface == nil || len(types.Variables(iface)) > 0 {
			g.diags = append(g.diags, sifterr.CannotInferError{
				Span: ast.SpanOf(decl),
				Name: decl.Name,
			})
		}
	}
	return g.diags
}

// applySolution writes the snapshot's types back into the tree.
func applySolution(file *ast.SourceFile, solution constraint.Solution, sys *constraint.System) {
	apply := ast.PostVisitor(func(e ast.Expr) ast.Expr {
		if t, ok := solution.TypeOf(e); ok {
			e.SetType(t)
		}
		if closure, ok := e.(*ast.ClosureExpr); ok {
			if t, ok := solution.TypeOf(closure.Param); ok {
				closure.Param.SetInterfaceType(t)
			}
		}
		return e
	})
	ast.WalkFile(apply, file)

	for _, decl := range file.Declarations {
		if iface := decl.InterfaceType(); iface != nil {
			decl.SetInterfaceType(sys.Simplify(iface))
		}
	}
}
