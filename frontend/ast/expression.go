package ast

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// All expression types implement the Expr interface

// IntegerLiteralExpr represents an integer literal.
type IntegerLiteralExpr struct {
	Span
	typed
	Value string
}

func (e *IntegerLiteralExpr) exprNode() {}

// Hash returns a hash value for the IntegerLiteralExpr, based on its structural characteristics
func (e *IntegerLiteralExpr) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("IntegerLiteralExpr")
	_, _ = h.Write([]byte(e.Value))
	arr = binary.LittleEndian.AppendUint64(arr, e.Span.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (e *IntegerLiteralExpr) String() string { return e.Value }

// UnresolvedDeclRefExpr represents a name reference before resolution.
// The resolve phase replaces it with a DeclRefExpr, or reports an
// undefined-name diagnostic.
type UnresolvedDeclRefExpr struct {
	Span
	typed
	Name string
}

func (e *UnresolvedDeclRefExpr) exprNode() {}

// Hash returns a hash value for the UnresolvedDeclRefExpr, based on its structural characteristics
func (e *UnresolvedDeclRefExpr) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("UnresolvedDeclRefExpr")
	_, _ = h.Write([]byte(e.Name))
	arr = binary.LittleEndian.AppendUint64(arr, e.Span.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (e *UnresolvedDeclRefExpr) String() string { return e.Name }

// DeclRefExpr represents a resolved reference to a declaration in scope.
type DeclRefExpr struct {
	Span
	typed
	Name   string
	Target ContextNode
}

func (e *DeclRefExpr) exprNode() {}

// Hash returns a hash value for the DeclRefExpr, based on its structural characteristics
func (e *DeclRefExpr) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("DeclRefExpr")
	_, _ = h.Write([]byte(e.Name))
	arr = binary.LittleEndian.AppendUint64(arr, e.Span.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (e *DeclRefExpr) String() string { return e.Name }

// ClosureExpr represents a single-parameter closure `{ (x: T) in body }`.
type ClosureExpr struct {
	Span
	typed
	Param *ParamDecl
	Body  Expr
}

func (e *ClosureExpr) exprNode() {}

// Hash returns a hash value for the ClosureExpr, based on its structural characteristics
func (e *ClosureExpr) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("ClosureExpr")
	arr = binary.LittleEndian.AppendUint64(arr, e.Span.Hash())
	if e.Param != nil {
		arr = binary.LittleEndian.AppendUint64(arr, e.Param.Hash())
	}
	if e.Body != nil {
		arr = binary.LittleEndian.AppendUint64(arr, e.Body.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (e *ClosureExpr) String() string {
	return fmt.Sprintf("{ (%s) in %s }", e.Param.Name, ExprString(e.Body))
}

// CallExpr represents a single-argument function call f(x).
type CallExpr struct {
	Span
	typed
	Fn  Expr
	Arg Expr
}

func (e *CallExpr) exprNode() {}

// Hash returns a hash value for the CallExpr, based on its structural characteristics
func (e *CallExpr) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("CallExpr")
	arr = binary.LittleEndian.AppendUint64(arr, e.Span.Hash())
	if e.Fn != nil {
		arr = binary.LittleEndian.AppendUint64(arr, e.Fn.Hash())
	}
	if e.Arg != nil {
		arr = binary.LittleEndian.AppendUint64(arr, e.Arg.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (e *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", ExprString(e.Fn), ExprString(e.Arg))
}

// ExprString renders e for logs and error messages, tolerating nil.
func ExprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", e)
}

var (
	_ Expr = (*IntegerLiteralExpr)(nil)
	_ Expr = (*UnresolvedDeclRefExpr)(nil)
	_ Expr = (*DeclRefExpr)(nil)
	_ Expr = (*ClosureExpr)(nil)
	_ Expr = (*CallExpr)(nil)
)
