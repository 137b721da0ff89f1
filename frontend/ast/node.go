package ast

import (
	"encoding/binary"
	"fmt"
	"go/token"
	"hash/fnv"

	"github.com/cottand/sift/frontend/types"
)

// Positioner locates a node in the original source file.
type Positioner interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// Span is the half-open source region [Start, Stop) a node covers.
// Positions are 1-based byte offsets; the zero Span means "no position",
// which synthesised nodes (like ambient declarations) carry.
type Span struct {
	Start token.Pos
	Stop  token.Pos
}

func (s Span) Pos() token.Pos { return s.Start }
func (s Span) End() token.Pos { return s.Stop }

func (s Span) String() string {
	if s.Stop <= s.Start+1 {
		return fmt.Sprintf("%d", s.Start)
	}
	return fmt.Sprintf("%d..%d", s.Start, s.Stop)
}

// Hash covers the start and width of the span, so nodes at different
// offsets (or of different extents) hash apart.
func (s Span) Hash() uint64 {
	h := fnv.New64a()
	buf := binary.AppendUvarint([]byte{'S'}, uint64(s.Start))
	buf = binary.AppendUvarint(buf, uint64(s.Stop-s.Start))
	_, _ = h.Write(buf)
	return h.Sum64()
}

// SpanBetween covers everything from the start of fst to the end of snd.
func SpanBetween(fst, snd Positioner) Span {
	return Span{Start: fst.Pos(), Stop: snd.End()}
}

// SpanOf is the span p covers, tolerating nil.
func SpanOf(p Positioner) Span {
	if p == nil {
		return Span{}
	}
	if s, ok := p.(Span); ok {
		return s
	}
	return Span{Start: p.Pos(), Stop: p.End()}
}

// Node is the base interface for all AST nodes.
//
// Node identity (as consumed by the constraint system's AST-type map) is
// the node's pointer, which must stay stable for the lifetime of the
// constraint system. Hash is structural and two distinct nodes may collide;
// it is used for logging and cheap structural comparison, never as a map key.
type Node interface {
	Positioner
	Hash() uint64
}

// Expr is the interface for all expression nodes in the AST.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions

	// DeclaredType is the type currently attached to this expression, which
	// may be nil before inference and is concrete after a solution is
	// applied.
	DeclaredType() types.Type
	SetType(types.Type)
}

// ContextNode is a node which introduces a name with an interface type into
// scope, like a variable or parameter declaration.
type ContextNode interface {
	Node
	DeclaredName() string

	// InterfaceType is the type this declaration exposes to references,
	// nil when not yet known.
	InterfaceType() types.Type
	SetInterfaceType(types.Type)
}

// typed is embedded by expression nodes to hold their inferred type.
type typed struct {
	typ types.Type
}

func (t *typed) DeclaredType() types.Type { return t.typ }
func (t *typed) SetType(ty types.Type)    { t.typ = ty }

// SourceFile represents a source file in the AST.
type SourceFile struct {
	Span
	Declarations []*VariableDecl
}

// Hash returns a hash value for the SourceFile, based on its structural characteristics
func (f *SourceFile) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("SourceFile")
	arr = binary.LittleEndian.AppendUint64(arr, f.Span.Hash())
	for _, decl := range f.Declarations {
		arr = binary.LittleEndian.AppendUint64(arr, decl.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// VariableDecl represents a top-level `let name (: Type)? = expr` declaration.
type VariableDecl struct {
	Span
	Name       string
	Annotation TypeAnnotation // optional, nil when absent
	Init       Expr           // nil for ambient (universe) declarations
	iface      types.Type
}

func (d *VariableDecl) DeclaredName() string { return d.Name }

func (d *VariableDecl) InterfaceType() types.Type     { return d.iface }
func (d *VariableDecl) SetInterfaceType(t types.Type) { d.iface = t }

// Hash returns a hash value for the VariableDecl, based on its structural characteristics
func (d *VariableDecl) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("VariableDecl")
	_, _ = h.Write([]byte(d.Name))
	arr = binary.LittleEndian.AppendUint64(arr, d.Span.Hash())
	if d.Annotation != nil {
		arr = binary.LittleEndian.AppendUint64(arr, d.Annotation.Hash())
	}
	if d.Init != nil {
		arr = binary.LittleEndian.AppendUint64(arr, d.Init.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// ParamDecl represents a closure parameter declaration.
type ParamDecl struct {
	Span
	Name       string
	Annotation TypeAnnotation // optional, nil when absent
	iface      types.Type
}

func (d *ParamDecl) DeclaredName() string { return d.Name }

func (d *ParamDecl) InterfaceType() types.Type     { return d.iface }
func (d *ParamDecl) SetInterfaceType(t types.Type) { d.iface = t }

// Hash returns a hash value for the ParamDecl, based on its structural characteristics
func (d *ParamDecl) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("ParamDecl")
	_, _ = h.Write([]byte(d.Name))
	arr = binary.LittleEndian.AppendUint64(arr, d.Span.Hash())
	if d.Annotation != nil {
		arr = binary.LittleEndian.AppendUint64(arr, d.Annotation.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

var (
	_ ContextNode = (*VariableDecl)(nil)
	_ ContextNode = (*ParamDecl)(nil)
)
