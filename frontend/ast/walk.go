package ast

import "fmt"

// Visitor is called by WalkExpr around every expression node.
//
// Pre may return a replacement for the node before its children are
// visited; returning descend=false skips the children. Post may replace
// the node again after the children have been rewritten in place.
type Visitor interface {
	Pre(Expr) (replacement Expr, descend bool)
	Post(Expr) Expr
}

// WalkExpr rewrites the expression tree rooted at e, pre- and post-visiting
// every node. Child pointers are reassigned in place when a visitor
// replaces a child; nodes the visitor leaves alone keep their identity.
func WalkExpr(v Visitor, e Expr) Expr {
	if e == nil {
		return nil
	}
	e, descend := v.Pre(e)
	if !descend {
		return v.Post(e)
	}
	switch e := e.(type) {
	case *IntegerLiteralExpr, *UnresolvedDeclRefExpr, *DeclRefExpr:
		// no children
	case *ClosureExpr:
		e.Body = WalkExpr(v, e.Body)
	case *CallExpr:
		e.Fn = WalkExpr(v, e.Fn)
		e.Arg = WalkExpr(v, e.Arg)
	default:
		panic(fmt.Sprintf("WalkExpr: unhandled expression %T", e))
	}
	return v.Post(e)
}

// WalkFile applies WalkExpr to the initialiser of every declaration of f.
func WalkFile(v Visitor, f *SourceFile) {
	for _, decl := range f.Declarations {
		if decl.Init != nil {
			decl.Init = WalkExpr(v, decl.Init)
		}
	}
}

// PreVisitor adapts a Pre-only function to the Visitor interface.
type PreVisitor func(Expr) (Expr, bool)

func (f PreVisitor) Pre(e Expr) (Expr, bool) { return f(e) }
func (f PreVisitor) Post(e Expr) Expr        { return e }

// PostVisitor adapts a Post-only function to the Visitor interface.
type PostVisitor func(Expr) Expr

func (f PostVisitor) Pre(e Expr) (Expr, bool) { return e, true }
func (f PostVisitor) Post(e Expr) Expr        { return f(e) }
