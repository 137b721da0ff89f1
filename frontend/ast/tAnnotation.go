package ast

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/cottand/sift/frontend/types"
)

// TypeAnnotation specifies what the program writes in the source AST, and is
// a schema that is compared against inference results.
//
// It is not to be confused with a types.Type (manipulated by the solver),
// although it can produce one via ConstructType, used when seeding
// constraints from annotations.
type TypeAnnotation interface {
	Positioner
	Hash() uint64

	// TypeString as would appear in the source
	TypeString() string

	// ConstructType produces a types.Type for use in inference
	ConstructType() types.Type
}

var (
	_ TypeAnnotation = TIdent{}
	_ TypeAnnotation = TFunc{}
)

// TIdent is a named type annotation, like `Int`.
type TIdent struct {
	Span
	Name string
}

func (t TIdent) TypeString() string { return t.Name }

func (t TIdent) ConstructType() types.Type {
	return types.NewPrimitive(t.Name)
}

func (t TIdent) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("TIdent")
	_, _ = h.Write([]byte(t.Name))
	arr = binary.LittleEndian.AppendUint64(arr, t.Span.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// TFunc is a function type annotation, like `(Int) -> Bool`.
type TFunc struct {
	Span
	Parameter TypeAnnotation
	Result    TypeAnnotation
}

func (t TFunc) TypeString() string {
	return fmt.Sprintf("(%s) -> %s", t.Parameter.TypeString(), t.Result.TypeString())
}

func (t TFunc) ConstructType() types.Type {
	return types.NewFunction(t.Parameter.ConstructType(), t.Result.ConstructType())
}

func (t TFunc) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("TFunc")
	arr = binary.LittleEndian.AppendUint64(arr, t.Parameter.Hash())
	arr = binary.LittleEndian.AppendUint64(arr, t.Result.Hash())
	arr = binary.LittleEndian.AppendUint64(arr, t.Span.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}
