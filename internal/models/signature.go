package models

import "strings"

// TypeKind is the native type family a fixture value maps to.
type TypeKind string

const (
	IntType    TypeKind = "int"
	FloatType  TypeKind = "float64"
	StringType TypeKind = "string"
	BoolType   TypeKind = "bool"
	SliceType  TypeKind = "slice"
)

// TypeInfo describes a solution parameter or result type.
type TypeInfo struct {
	Kind TypeKind
	Elem *TypeInfo // element type when Kind is SliceType
}

// GoType returns the Go spelling of t, e.g. "[][]int".
func (t TypeInfo) GoType() string {
	if t.Kind == SliceType {
		if t.Elem == nil {
			return "[]any"
		}
		return "[]" + t.Elem.GoType()
	}
	return string(t.Kind)
}

// Signature is the parameter and result types of a solution function.
type Signature struct {
	Params []TypeInfo
	Result TypeInfo
}

// Arity returns the number of parameters.
func (s Signature) Arity() int { return len(s.Params) }

func (s Signature) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.GoType()
	}
	return "func(" + strings.Join(params, ", ") + ") " + s.Result.GoType()
}
