package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/dsa/internal/errors"
)

// Kind identifies which variant of a Value is active.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a parsed JSON value. Exactly one variant is active, as reported
// by Kind. The zero Value is JSON null.
//
// Container values own their children. Use Clone to get an independent copy.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Object
}

// NewNull returns the JSON null value.
func NewNull() Value { return Value{} }

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{kind: BoolKind, b: b} }

// NewNumber wraps a number.
func NewNumber(n float64) Value { return Value{kind: NumberKind, n: n} }

// NewString wraps a string.
func NewString(s string) Value { return Value{kind: StringKind, s: s} }

// NewArray wraps a list of values. A nil list becomes an empty array.
func NewArray(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{kind: ArrayKind, arr: values}
}

// NewObjectValue wraps an object. A nil object becomes an empty object.
func NewObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: ObjectKind, obj: o}
}

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == NullKind }

func (v Value) mismatch(want Kind) error {
	return errors.NewTypeMismatchError(fmt.Sprintf("value is %s, not %s", v.kind, want), nil)
}

// Bool returns the boolean variant.
func (v Value) Bool() (bool, error) {
	if v.kind != BoolKind {
		return false, v.mismatch(BoolKind)
	}
	return v.b, nil
}

// Number returns the numeric variant.
func (v Value) Number() (float64, error) {
	if v.kind != NumberKind {
		return 0, v.mismatch(NumberKind)
	}
	return v.n, nil
}

// Str returns the string variant.
func (v Value) Str() (string, error) {
	if v.kind != StringKind {
		return "", v.mismatch(StringKind)
	}
	return v.s, nil
}

// Array returns the elements of an array value. The slice is shared with v.
func (v Value) Array() ([]Value, error) {
	if v.kind != ArrayKind {
		return nil, v.mismatch(ArrayKind)
	}
	return v.arr, nil
}

// Object returns the members of an object value. The object is shared with v.
func (v Value) Object() (*Object, error) {
	if v.kind != ObjectKind {
		return nil, v.mismatch(ObjectKind)
	}
	return v.obj, nil
}

// Get looks up key in an object value. It reports false when v is not an
// object or has no such member.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Len returns the number of elements or members of a container, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.arr)
	case ObjectKind:
		return v.obj.Len()
	}
	return 0
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case ArrayKind:
		arr := make([]Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = e.Clone()
		}
		return Value{kind: ArrayKind, arr: arr}
	case ObjectKind:
		return Value{kind: ObjectKind, obj: v.obj.Clone()}
	default:
		return v
	}
}

// Equal reports whether v and other hold the same variant with equal
// contents. Object member order is not significant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == other.b
	case NumberKind:
		return v.n == other.n
	case StringKind:
		return v.s == other.s
	case ArrayKind:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for _, k := range v.obj.keys {
			ov, ok := other.obj.Get(k)
			if !ok || !v.obj.values[k].Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v into the shapes produced by encoding/json:
// nil, bool, float64, string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case BoolKind:
		return v.b
	case NumberKind:
		return v.n
	case StringKind:
		return v.s
	case ArrayKind:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case ObjectKind:
		out := make(map[string]any, v.obj.Len())
		for _, k := range v.obj.keys {
			out[k] = v.obj.values[k].Interface()
		}
		return out
	default:
		return nil
	}
}

// String serializes v as compact JSON. Object members are written in
// document order. Parsing the result yields a value Equal to v.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case NullKind:
		sb.WriteString("null")
	case BoolKind:
		sb.WriteString(strconv.FormatBool(v.b))
	case NumberKind:
		sb.WriteString(FormatNumber(v.n))
	case StringKind:
		writeQuoted(sb, v.s)
	case ArrayKind:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case ObjectKind:
		sb.WriteByte('{')
		for i, k := range v.obj.keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeQuoted(sb, k)
			sb.WriteByte(':')
			v.obj.values[k].write(sb)
		}
		sb.WriteByte('}')
	}
}

// FormatNumber renders n in the shortest form that parses back to n.
func FormatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
}
