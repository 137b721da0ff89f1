// Package sifterr defines the diagnostics the checker reports: positioned,
// coded errors collected across compilation phases.
package sifterr

import (
	"fmt"
	"log/slog"

	"github.com/cottand/sift/frontend/ast"
)

// Code classifies a diagnostic; its String form is the mnemonic shown to users.
type Code int

const (
	CodeUnknown Code = iota
	CodeParse
	CodeUndefinedName
	CodeDuplicateDeclaration
	CodeTypeMismatch
	CodeOccursCheck
	CodeCannotInfer
)

func (c Code) String() string {
	switch c {
	case CodeParse:
		return "parse"
	case CodeUndefinedName:
		return "undefined-name"
	case CodeDuplicateDeclaration:
		return "duplicate-declaration"
	case CodeTypeMismatch:
		return "type-mismatch"
	case CodeOccursCheck:
		return "occurs-check"
	case CodeCannotInfer:
		return "cannot-infer"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem, located in the source.
type Diagnostic interface {
	error
	Code() Code
	ast.Positioner
}

// Render formats d the way the CLI prints it.
func Render(d Diagnostic) string {
	return fmt.Sprintf("[%s] %s", d.Code(), d.Error())
}

// Diagnostics is an ordered collection of problems. Phases append to their
// own slice and the driver concatenates them; a nil slice is a clean run.
type Diagnostics []Diagnostic

func (d Diagnostics) HasErrors() bool { return len(d) > 0 }

// LogValue renders the collection for structured logs, one attribute per
// diagnostic keyed by its position in the list.
func (d Diagnostics) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(d))
	for i, diag := range d {
		attrs = append(attrs, slog.String(fmt.Sprintf("d%d", i), Render(diag)))
	}
	return slog.GroupValue(attrs...)
}
