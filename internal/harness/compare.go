package harness

import (
	"fmt"
	"reflect"

	"github.com/mcncl/dsa/internal/errors"
)

type family int

const (
	familyNone family = iota
	familyBool
	familyInt
	familyUint
	familyFloat
	familyString
	familySlice
)

func familyOf(k reflect.Kind) family {
	switch k {
	case reflect.Bool:
		return familyBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return familyInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return familyUint
	case reflect.Float32, reflect.Float64:
		return familyFloat
	case reflect.String:
		return familyString
	case reflect.Slice:
		return familySlice
	default:
		return familyNone
	}
}

func (f family) numeric() bool {
	return f == familyInt || f == familyUint || f == familyFloat
}

// deref unwraps interface values such as the elements of an inferred []any.
func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}

// equal compares a solution result with an expected value. Values of the
// same family compare by value; integers and floats compare after widening
// to float64; slices compare element-wise. Any other pairing is an
// unsupported comparison.
func equal(actual, expected reflect.Value) (bool, error) {
	actual, expected = deref(actual), deref(expected)
	if !actual.IsValid() || !expected.IsValid() {
		return false, comparisonError(actual, expected)
	}

	fa, fe := familyOf(actual.Kind()), familyOf(expected.Kind())
	switch {
	case fa.numeric() && fe.numeric():
		return numericEqual(actual, fa, expected, fe), nil
	case fa != fe || fa == familyNone:
		return false, comparisonError(actual, expected)
	case fa == familyBool:
		return actual.Bool() == expected.Bool(), nil
	case fa == familyString:
		return actual.String() == expected.String(), nil
	}

	// Both slices. Length is checked after the element comparisons so that
	// a kind mismatch is reported even when the lengths differ.
	n := min(actual.Len(), expected.Len())
	same := actual.Len() == expected.Len()
	for i := 0; i < n; i++ {
		ok, err := equal(actual.Index(i), expected.Index(i))
		if err != nil {
			return false, err
		}
		same = same && ok
	}
	return same, nil
}

func numericEqual(a reflect.Value, fa family, b reflect.Value, fb family) bool {
	switch {
	case fa == familyInt && fb == familyInt:
		return a.Int() == b.Int()
	case fa == familyUint && fb == familyUint:
		return a.Uint() == b.Uint()
	case fa == familyInt && fb == familyUint:
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	case fa == familyUint && fb == familyInt:
		return b.Int() >= 0 && a.Uint() == uint64(b.Int())
	default:
		return toFloat(a, fa) == toFloat(b, fb)
	}
}

func toFloat(v reflect.Value, f family) float64 {
	switch f {
	case familyInt:
		return float64(v.Int())
	case familyUint:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func comparisonError(actual, expected reflect.Value) error {
	return errors.NewComparisonError(
		fmt.Sprintf("cannot compare %s with %s", describeKind(actual), describeKind(expected)),
		nil,
	)
}

func describeKind(v reflect.Value) string {
	if !v.IsValid() {
		return "nothing"
	}
	return v.Type().String()
}

// checkComparable reports whether results of type result can ever be
// compared with expected, so that an unsupported comparison is found while
// the fixture is loaded rather than halfway through a run.
func checkComparable(result reflect.Type, expected reflect.Value) error {
	expected = deref(expected)
	if !expected.IsValid() {
		return errors.NewComparisonError(fmt.Sprintf("cannot compare %s with nothing", result), nil)
	}

	fr, fe := familyOf(result.Kind()), familyOf(expected.Kind())
	switch {
	case fr.numeric() && fe.numeric():
		return nil
	case fr != fe || fr == familyNone:
		return errors.NewComparisonError(
			fmt.Sprintf("cannot compare %s with %s", result, expected.Type()),
			nil,
		)
	case fr == familySlice:
		for i := 0; i < expected.Len(); i++ {
			if err := checkComparable(result.Elem(), expected.Index(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
