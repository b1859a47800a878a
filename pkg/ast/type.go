package ast

import "fmt"

// Kind distinguishes the different shapes a PineType can take.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindString
	KindVoid
	KindUnknown
	KindList
	KindFunction
	KindObject
)

// PineType is Pine's type representation, shared by every AST node's Type
// field and by every Symbol. List, Function and Object carry nested shape;
// the rest are plain tags.
type PineType struct {
	Kind Kind

	// KindList
	Elem *PineType

	// KindFunction
	Params []PineType
	Ret    *PineType

	// KindObject
	Name   string
	Fields []ObjectField
}

// ObjectField is one (name, type) pair of an object type, kept in
// declaration order since field layout (pkg/codegen's offset pass) depends
// on it.
type ObjectField struct {
	Name string
	Type PineType
}

var (
	Integer = PineType{Kind: KindInteger}
	Float   = PineType{Kind: KindFloat}
	Bool    = PineType{Kind: KindBool}
	String  = PineType{Kind: KindString}
	Void    = PineType{Kind: KindVoid}
	Unknown = PineType{Kind: KindUnknown}
)

// NewList builds a List(elem) type.
func NewList(elem PineType) PineType {
	return PineType{Kind: KindList, Elem: &elem}
}

// NewFunction builds a Function(params, ret) type.
func NewFunction(params []PineType, ret PineType) PineType {
	return PineType{Kind: KindFunction, Params: params, Ret: &ret}
}

// NewObject builds an Object(name, fields) type.
func NewObject(name string, fields []ObjectField) PineType {
	return PineType{Kind: KindObject, Name: name, Fields: fields}
}

// FieldType returns the type of field name on an Object type, or false if
// no such field exists.
func (t PineType) FieldType(name string) (PineType, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return PineType{}, false
}

// Equal reports structural type equality, the relation used throughout
// pkg/sem's typing passes.
func (t PineType) Equal(other PineType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindList:
		return t.Elem.Equal(*other.Elem)
	case KindFunction:
		if len(t.Params) != len(other.Params) || !t.Ret.Equal(*other.Ret) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return t.Name == other.Name
	default:
		return true
	}
}

// Size returns the byte size a value of type t occupies in PVM memory.
func (t PineType) Size() int {
	switch t.Kind {
	case KindInteger, KindFloat:
		return 8
	case KindBool:
		return 1
	case KindString, KindList, KindFunction:
		return 8 // pointer/handle width
	case KindObject:
		total := 0
		for _, f := range t.Fields {
			total += f.Type.Size()
		}
		return total
	default:
		return 0
	}
}

func (t PineType) String() string {
	switch t.Kind {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindUnknown:
		return "unknown"
	case KindList:
		return fmt.Sprintf("list(%s)", t.Elem)
	case KindFunction:
		return fmt.Sprintf("fun(%v) -> %s", t.Params, t.Ret)
	case KindObject:
		return fmt.Sprintf("object %s", t.Name)
	default:
		return "?"
	}
}
