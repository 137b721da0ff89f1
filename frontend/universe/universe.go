// Package universe declares the ambient bindings every checked file can
// refer to without declaring them: boolean constants and curried integer
// arithmetic. A prelude manifest can extend or shadow them.
package universe

import (
	"io"

	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/types"
	"github.com/cottand/sift/parser"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Binding is one ambient name with its interface type.
type Binding struct {
	Name string
	Type types.Type
}

var (
	intType  = types.NewPrimitive("Int")
	boolType = types.NewPrimitive("Bool")
)

// intBinOp is (Int) -> (Int) -> Int; every call site in the language takes
// a single argument, so operators are curried.
func intBinOp() types.Type {
	return types.NewFunction(intType, types.NewFunction(intType, intType))
}

// Default returns the compiled-in bindings.
func Default() []Binding {
	return []Binding{
		{Name: "true", Type: boolType},
		{Name: "false", Type: boolType},
		{Name: "plus", Type: intBinOp()},
		{Name: "minus", Type: intBinOp()},
		{Name: "times", Type: intBinOp()},
		{Name: "isZero", Type: types.NewFunction(intType, boolType)},
	}
}

// manifest is the YAML shape of a prelude file:
//
//	bindings:
//	  - name: not
//	    type: (Bool) -> Bool
type manifest struct {
	Bindings []manifestBinding `yaml:"bindings"`
}

type manifestBinding struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Load parses a prelude manifest. Returned bindings are appended after
// Default's by callers, so a manifest entry shadows a compiled-in name.
func Load(r io.Reader) ([]Binding, error) {
	var m manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "could not decode prelude manifest")
	}
	bindings := make([]Binding, 0, len(m.Bindings))
	for _, entry := range m.Bindings {
		if entry.Name == "" {
			return nil, errors.Errorf("prelude binding with empty name")
		}
		ann, diags := parser.ParseType(entry.Type)
		if diags.HasErrors() {
			return nil, errors.Errorf("prelude binding '%s': invalid type %q: %s",
				entry.Name, entry.Type, diags[0].Error())
		}
		bindings = append(bindings, Binding{Name: entry.Name, Type: ann.ConstructType()})
	}
	return bindings, nil
}

// Declarations renders bindings as ambient AST declarations (no
// initialiser, interface type already known) ready to seed a scope.
func Declarations(bindings []Binding) []*ast.VariableDecl {
	decls := make([]*ast.VariableDecl, len(bindings))
	for i, b := range bindings {
		decl := &ast.VariableDecl{Name: b.Name}
		decl.SetInterfaceType(b.Type)
		decls[i] = decl
	}
	return decls
}
