package sifterr

import (
	"fmt"

	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/types"
)

var (
	_ Diagnostic = ParseError{}
	_ Diagnostic = UndefinedNameError{}
	_ Diagnostic = DuplicateDeclarationError{}
	_ Diagnostic = TypeMismatchError{}
	_ Diagnostic = OccursCheckError{}
	_ Diagnostic = CannotInferError{}
)

// ParseError reports malformed source the parser could not recover into a
// declaration.
type ParseError struct {
	ast.Span
	Message string
	Hint    string
}

func (e ParseError) Code() Code { return CodeParse }
func (e ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Hint)
	}
	return e.Message
}

// UndefinedNameError reports a reference no declaration in scope satisfies.
type UndefinedNameError struct {
	ast.Span
	Name string
}

func (e UndefinedNameError) Code() Code { return CodeUndefinedName }
func (e UndefinedNameError) Error() string {
	return fmt.Sprintf("undefined name '%s'", e.Name)
}

// DuplicateDeclarationError reports a name declared more than once at the
// top level.
type DuplicateDeclarationError struct {
	ast.Span
	Name string
}

func (e DuplicateDeclarationError) Code() Code { return CodeDuplicateDeclaration }
func (e DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("'%s' is declared more than once", e.Name)
}

// TypeMismatchError reports an equality constraint between two types that
// can never hold.
type TypeMismatchError struct {
	ast.Span
	Expected types.Type
	Actual   types.Type
}

func (e TypeMismatchError) Code() Code { return CodeTypeMismatch }
func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("expected type %v but found %v", e.Expected, e.Actual)
}

// OccursCheckError reports a variable equated with a type containing itself.
type OccursCheckError struct {
	ast.Span
	Variable types.Type
	Inside   types.Type
}

func (e OccursCheckError) Code() Code { return CodeOccursCheck }
func (e OccursCheckError) Error() string {
	return fmt.Sprintf("cannot construct the infinite type %v = %v", e.Variable, e.Inside)
}

// CannotInferError reports a declaration whose type still contains free
// variables after solving.
type CannotInferError struct {
	ast.Span
	Name string
}

func (e CannotInferError) Code() Code { return CodeCannotInfer }
func (e CannotInferError) Error() string {
	return fmt.Sprintf("could not infer a type for '%s'", e.Name)
}
