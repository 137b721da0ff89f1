package frontend

import (
	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/sifterr"
	"github.com/cottand/sift/util"
)

// resolver rewrites UnresolvedDeclRefExpr nodes into DeclRefExpr nodes
// pointing at the declaration each name refers to. Closure parameters open
// a new lexical scope for the closure body; top-level declarations are
// visible to the declarations that follow them, never to themselves.
type resolver struct {
	toplevel map[string]ast.ContextNode
	scopes   util.Stack[map[string]ast.ContextNode]
	diags    sifterr.Diagnostics
}

var _ ast.Visitor = (*resolver)(nil)

func (r *resolver) lookup(name string) ast.ContextNode {
	var found ast.ContextNode
	r.scopes.All(func(scope map[string]ast.ContextNode) bool {
		if target, ok := scope[name]; ok {
			found = target
			return false
		}
		return true
	})
	if found != nil {
		return found
	}
	return r.toplevel[name]
}

func (r *resolver) Pre(e ast.Expr) (ast.Expr, bool) {
	switch e := e.(type) {
	case *ast.ClosureExpr:
		r.scopes.Push(map[string]ast.ContextNode{e.Param.Name: e.Param})
	case *ast.UnresolvedDeclRefExpr:
		target := r.lookup(e.Name)
		if target == nil {
			r.diags = append(r.diags, sifterr.UndefinedNameError{
				Span: ast.SpanOf(e),
				Name: e.Name,
			})
			return e, true
		}
		return &ast.DeclRefExpr{
			Span:   ast.SpanOf(e),
			Name:   e.Name,
			Target: target,
		}, true
	}
	return e, true
}

func (r *resolver) Post(e ast.Expr) ast.Expr {
	if _, isClosure := e.(*ast.ClosureExpr); isClosure {
		_, _ = r.scopes.Pop()
	}
	return e
}

// resolvePhase resolves every name in file against ambient declarations and
// the file's own declarations, in order.
func resolvePhase(file *ast.SourceFile, ambient []*ast.VariableDecl) sifterr.Diagnostics {
	r := &resolver{toplevel: make(map[string]ast.ContextNode, len(ambient))}
	for _, decl := range ambient {
		r.toplevel[decl.Name] = decl
	}

	seen := util.NewEmptySet[string]()
	for _, decl := range file.Declarations {
		if decl.Init != nil {
			decl.Init = ast.WalkExpr(r, decl.Init)
		}
		if seen.Contains(decl.Name) {
			r.diags = append(r.diags, sifterr.DuplicateDeclarationError{
				Span: ast.SpanOf(decl),
				Name: decl.Name,
			})
		}
		seen.Add(decl.Name)
		// later declarations see this one; on a duplicate the latest wins
		r.toplevel[decl.Name] = decl
	}
	return r.diags
}
