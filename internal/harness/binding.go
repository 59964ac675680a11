package harness

import (
	"fmt"
	"reflect"

	"github.com/mcncl/dsa/internal/errors"
	"github.com/mcncl/dsa/internal/models"
)

// solutionMethod is the method name looked up when a non-function value is
// bound, so a struct with a Solution method can be passed directly.
const solutionMethod = "Solution"

// bind resolves solution to a callable function value and checks that every
// parameter and the single result have a supported type.
func bind(solution any) (reflect.Value, error) {
	if solution == nil {
		return reflect.Value{}, errors.NewConfigError("solution is nil", errors.ErrInvalidSignature)
	}
	fn := reflect.ValueOf(solution)
	if fn.Kind() != reflect.Func {
		m := fn.MethodByName(solutionMethod)
		if !m.IsValid() {
			return reflect.Value{}, errors.NewConfigError(
				fmt.Sprintf("solution must be a function or have a %s method, got %T", solutionMethod, solution),
				errors.ErrInvalidSignature,
			)
		}
		fn = m
	}
	if fn.IsNil() {
		return reflect.Value{}, errors.NewConfigError("solution function is nil", errors.ErrInvalidSignature)
	}

	t := fn.Type()
	if t.IsVariadic() {
		return reflect.Value{}, errors.NewConfigError(
			fmt.Sprintf("variadic solution %s is not supported", t),
			errors.ErrInvalidSignature,
		)
	}
	if t.NumOut() != 1 {
		return reflect.Value{}, errors.NewConfigError(
			fmt.Sprintf("solution %s must return exactly one value", t),
			errors.ErrInvalidSignature,
		)
	}
	for i := 0; i < t.NumIn(); i++ {
		if _, ok := typeInfoOf(t.In(i)); !ok {
			return reflect.Value{}, errors.NewConfigError(
				fmt.Sprintf("parameter %d of %s has unsupported type %s", i, t, t.In(i)),
				errors.ErrInvalidSignature,
			)
		}
	}
	if _, ok := typeInfoOf(t.Out(0)); !ok {
		return reflect.Value{}, errors.NewConfigError(
			fmt.Sprintf("result of %s has unsupported type %s", t, t.Out(0)),
			errors.ErrInvalidSignature,
		)
	}
	return fn, nil
}

// Signature describes the parameter and result types of a bindable solution.
func Signature(solution any) (models.Signature, error) {
	fn, err := bind(solution)
	if err != nil {
		return models.Signature{}, err
	}
	return signatureOf(fn.Type()), nil
}

func signatureOf(t reflect.Type) models.Signature {
	sig := models.Signature{Params: make([]models.TypeInfo, t.NumIn())}
	for i := range sig.Params {
		sig.Params[i], _ = typeInfoOf(t.In(i))
	}
	sig.Result, _ = typeInfoOf(t.Out(0))
	return sig
}

// typeInfoOf maps a Go type onto the fixture type families. Every int and
// uint width maps to IntType and both float widths to FloatType.
func typeInfoOf(t reflect.Type) (models.TypeInfo, bool) {
	switch t.Kind() {
	case reflect.Bool:
		return models.TypeInfo{Kind: models.BoolType}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return models.TypeInfo{Kind: models.IntType}, true
	case reflect.Float32, reflect.Float64:
		return models.TypeInfo{Kind: models.FloatType}, true
	case reflect.String:
		return models.TypeInfo{Kind: models.StringType}, true
	case reflect.Slice:
		elem, ok := typeInfoOf(t.Elem())
		if !ok {
			return models.TypeInfo{}, false
		}
		return models.TypeInfo{Kind: models.SliceType, Elem: &elem}, true
	default:
		return models.TypeInfo{}, false
	}
}
