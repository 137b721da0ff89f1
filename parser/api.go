package parser

import (
	"os"

	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/sifterr"
	"github.com/pkg/errors"
)

// Parse returns an ast.SourceFile without any additional processing, like
// name resolution or type inference. The returned file contains every
// declaration that parsed; malformed declarations are reported as
// diagnostics and skipped.
func Parse(src string) (*ast.SourceFile, sifterr.Diagnostics) {
	p := newParser(src)
	file := p.parseFile()
	return file, p.diags
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*ast.SourceFile, sifterr.Diagnostics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not read %s", path)
	}
	file, diags := Parse(string(data))
	return file, diags, nil
}

// ParseType parses a standalone type annotation, like "(Int) -> Bool".
// Useful for manifests that declare ambient bindings by type string.
func ParseType(src string) (ast.TypeAnnotation, sifterr.Diagnostics) {
	p := newParser(src)
	ann, ok := p.parseType()
	if ok && p.tok.Type != EOF {
		p.errorf(tokenSpan(p.tok), "unexpected %s after type", p.tok)
		ok = false
	}
	if !ok {
		return nil, p.diags
	}
	return ann, p.diags
}
