package types

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"iter"
)

// TypeVarID identifies a type variable within its constraint.System.
// IDs are allocated in order starting at 1; 0 is never a valid ID.
type TypeVarID int

// Type is a type term: either a type variable or a concrete type shape.
//
// Types are values and are never mutated after construction. Sharing a
// *TypeVariable means referring to the same variable entity in whichever
// store allocated it.
type Type interface {
	fmt.Stringer
	Hash() uint64
	// Children iterates over the immediate sub-terms, if any.
	Children() iter.Seq[Type]
	// transform rebuilds this type with every immediate child replaced by f(child)
	transform(f func(Type) Type) Type
}

var (
	_ Type = (*TypeVariable)(nil)
	_ Type = (*PrimitiveType)(nil)
	_ Type = (*FunctionType)(nil)
)

// TypeVariable is a placeholder type with identity, resolved by the solver.
// Two variables are the same variable iff their IDs are equal.
type TypeVariable struct {
	ID TypeVarID
}

func (t *TypeVariable) String() string {
	return fmt.Sprintf("$T%d", t.ID)
}

func (t *TypeVariable) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("TypeVariable")
	arr = binary.LittleEndian.AppendUint64(arr, uint64(t.ID))
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (t *TypeVariable) Children() iter.Seq[Type] {
	return func(yield func(Type) bool) {}
}

func (t *TypeVariable) transform(func(Type) Type) Type { return t }

// PrimitiveType is a named concrete type with no structure, like Int or Bool.
type PrimitiveType struct {
	Name string
}

func NewPrimitive(name string) *PrimitiveType {
	return &PrimitiveType{Name: name}
}

func (t *PrimitiveType) String() string { return t.Name }

func (t *PrimitiveType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("PrimitiveType"))
	_, _ = h.Write([]byte(t.Name))
	return h.Sum64()
}

func (t *PrimitiveType) Children() iter.Seq[Type] {
	return func(yield func(Type) bool) {}
}

func (t *PrimitiveType) transform(func(Type) Type) Type { return t }

// FunctionType is a single-parameter function shape.
type FunctionType struct {
	Parameter Type
	Result    Type
}

func NewFunction(parameter, result Type) *FunctionType {
	return &FunctionType{Parameter: parameter, Result: result}
}

func (t *FunctionType) String() string {
	return fmt.Sprintf("(%s) -> %s", t.Parameter, t.Result)
}

func (t *FunctionType) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("FunctionType")
	arr = binary.LittleEndian.AppendUint64(arr, t.Parameter.Hash())
	arr = binary.LittleEndian.AppendUint64(arr, t.Result.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (t *FunctionType) Children() iter.Seq[Type] {
	return func(yield func(Type) bool) {
		if !yield(t.Parameter) {
			return
		}
		yield(t.Result)
	}
}

func (t *FunctionType) transform(f func(Type) Type) Type {
	parameter := f(t.Parameter)
	result := f(t.Result)
	if parameter == t.Parameter && result == t.Result {
		return t
	}
	return &FunctionType{Parameter: parameter, Result: result}
}

// Equal compares two types structurally. Variables compare by ID.
func Equal(this, other Type) bool {
	if this == nil || other == nil {
		return this == other
	}
	return this.Hash() == other.Hash()
}
