package frontend

import (
	"log/slog"

	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/constraint"
	"github.com/cottand/sift/frontend/sifterr"
	"github.com/cottand/sift/frontend/universe"
	"github.com/cottand/sift/internal/log"
	"github.com/cottand/sift/parser"
)

var logger = log.DefaultLogger.With("section", "frontend")

// Result is a fully checked source file together with the constraint
// system that checked it and a solution snapshot taken after solving.
type Result struct {
	File     *ast.SourceFile
	System   *constraint.System
	Solution constraint.Solution
}

// Check parses, resolves, and infers types for src. The ambient bindings
// (typically universe.Default, possibly extended from a prelude manifest)
// seed the outermost scope.
//
// Diagnostics accumulate across phases: inference still runs when
// resolution reported errors, so every declaration that can be typed is.
func Check(src string, ambient []universe.Binding) (*Result, sifterr.Diagnostics) {
	file, diags := parser.Parse(src)

	ambientDecls := universe.Declarations(ambient)
	diags = append(diags, resolvePhase(file, ambientDecls)...)

	sys := constraint.NewSystem()
	diags = append(diags, inferPhase(file, sys)...)
	if diags.HasErrors() {
		logger.Debug("check finished with diagnostics", slog.Any("diagnostics", diags))
	}

	return &Result{
		File:     file,
		System:   sys,
		Solution: sys.CurrentSolution(),
	}, diags
}
