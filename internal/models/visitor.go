package models

// A Visitor processes a Value by kind. Array and Object may recurse into
// their children with Accept.
type Visitor[T any] interface {
	Null() (T, error)
	Bool(bool) (T, error)
	Number(float64) (T, error)
	String(string) (T, error)
	Array([]Value) (T, error)
	Object(*Object) (T, error)
}

// Accept calls the visitor method matching the kind of v.
//
// This is a function rather than a method because Go methods cannot
// introduce their own type parameters.
func Accept[T any](v Value, visitor Visitor[T]) (T, error) {
	switch v.kind {
	case BoolKind:
		return visitor.Bool(v.b)
	case NumberKind:
		return visitor.Number(v.n)
	case StringKind:
		return visitor.String(v.s)
	case ArrayKind:
		return visitor.Array(v.arr)
	case ObjectKind:
		return visitor.Object(v.obj)
	default:
		return visitor.Null()
	}
}
