package harness

import (
	"fmt"
	"math"
	"reflect"

	"github.com/mcncl/dsa/internal/errors"
	"github.com/mcncl/dsa/internal/models"
)

// coerce converts a JSON value into a fresh Go value of type t.
//
//	boolean -> bool
//	number  -> any int or uint type, only when integral and in range
//	number  -> float32, float64
//	string  -> string
//	array   -> slice, element by element
//
// Everything else is an unsupported coercion.
func coerce(v models.Value, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.Bool:
		b, err := v.Bool()
		if err != nil {
			return reflect.Value{}, coercionError(v, t)
		}
		out.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := v.Number()
		if err != nil || n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return reflect.Value{}, coercionError(v, t)
		}
		if out.OverflowInt(int64(n)) {
			return reflect.Value{}, coercionError(v, t)
		}
		out.SetInt(int64(n))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := v.Number()
		if err != nil || n != math.Trunc(n) || n < 0 || n >= math.MaxUint64 {
			return reflect.Value{}, coercionError(v, t)
		}
		if out.OverflowUint(uint64(n)) {
			return reflect.Value{}, coercionError(v, t)
		}
		out.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		n, err := v.Number()
		if err != nil || out.OverflowFloat(n) {
			return reflect.Value{}, coercionError(v, t)
		}
		out.SetFloat(n)

	case reflect.String:
		s, err := v.Str()
		if err != nil {
			return reflect.Value{}, coercionError(v, t)
		}
		out.SetString(s)

	case reflect.Slice:
		elems, err := v.Array()
		if err != nil {
			return reflect.Value{}, coercionError(v, t)
		}
		out = reflect.MakeSlice(t, len(elems), len(elems))
		for i, e := range elems {
			ev, err := coerce(e, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}

	default:
		return reflect.Value{}, coercionError(v, t)
	}
	return out, nil
}

func coercionError(v models.Value, t reflect.Type) error {
	return errors.NewCoercionError(fmt.Sprintf("cannot use %s %s as %s", v.Kind(), v, t), nil)
}

// expectedInferrer coerces an expected value without a target type:
// integral numbers become int, other numbers float64, arrays []any.
type expectedInferrer struct{}

var (
	intType  = reflect.TypeOf(0)
	anySlice = reflect.TypeOf([]any(nil))
)

func inferExpected(v models.Value) (reflect.Value, error) {
	return models.Accept[reflect.Value](v, expectedInferrer{})
}

func (expectedInferrer) Null() (reflect.Value, error) {
	return reflect.Value{}, errors.NewCoercionError("expected value null has no native type", nil)
}

func (expectedInferrer) Bool(b bool) (reflect.Value, error) {
	return reflect.ValueOf(b), nil
}

func (expectedInferrer) Number(n float64) (reflect.Value, error) {
	if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 && !reflect.Zero(intType).OverflowInt(int64(n)) {
		return reflect.ValueOf(int(n)), nil
	}
	return reflect.ValueOf(n), nil
}

func (expectedInferrer) String(s string) (reflect.Value, error) {
	return reflect.ValueOf(s), nil
}

func (e expectedInferrer) Array(values []models.Value) (reflect.Value, error) {
	out := reflect.MakeSlice(anySlice, len(values), len(values))
	for i, v := range values {
		ev, err := models.Accept[reflect.Value](v, e)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(ev)
	}
	return out, nil
}

func (expectedInferrer) Object(o *models.Object) (reflect.Value, error) {
	return reflect.Value{}, errors.NewCoercionError(
		fmt.Sprintf("expected value %s is an object, which has no native type", models.NewObjectValue(o)),
		nil,
	)
}
