package harness

import (
	stderrors "errors"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/dsa/internal/errors"
	"github.com/mcncl/dsa/internal/models"
	"github.com/mcncl/dsa/internal/parser"
)

func mustParse(t *testing.T, src string) models.Value {
	t.Helper()
	v, err := parser.ParseString(src)
	require.NoError(t, err)
	return v
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		target any
		want   any
	}{
		{"integral number to int", `4.0`, 0, 4},
		{"number to int64", `-12`, int64(0), int64(-12)},
		{"number to uint8", `255`, uint8(0), uint8(255)},
		{"number to float64", `4.5`, 0.0, 4.5},
		{"number to float32", `0.5`, float32(0), float32(0.5)},
		{"bool", `true`, false, true},
		{"string", `"a\tb"`, "", "a\tb"},
		{"empty slice", `[]`, []int(nil), []int{}},
		{"slice of strings", `["x", "y"]`, []string(nil), []string{"x", "y"}},
		{"nested slices", `[[1, 2], [3]]`, [][]int(nil), [][]int{{1, 2}, {3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce(mustParse(t, tt.json), reflect.TypeOf(tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestCoerce_Unsupported(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		target any
	}{
		{"fractional to int", `4.5`, 0},
		{"out of range for int8", `300`, int8(0)},
		{"negative to uint", `-1`, uint(0)},
		{"too large for int64", `1e19`, int64(0)},
		{"too large for float32", `1e300`, float32(0)},
		{"string to int", `"4"`, 0},
		{"number to string", `4`, ""},
		{"number to bool", `1`, false},
		{"null to string", `null`, ""},
		{"object to slice", `{}`, []int(nil)},
		{"bad slice element", `[1, "2"]`, []int(nil)},
		{"number to map", `1`, map[string]int(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := coerce(mustParse(t, tt.json), reflect.TypeOf(tt.target))
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.UnsupportedCoercion), "got %v", err)
		})
	}
}

func TestCoerce_FreshValues(t *testing.T) {
	doc := mustParse(t, `[1, 2, 3]`)
	a, err := coerce(doc, reflect.TypeOf([]int(nil)))
	require.NoError(t, err)
	b, err := coerce(doc, reflect.TypeOf([]int(nil)))
	require.NoError(t, err)

	a.Index(0).SetInt(99)
	assert.Equal(t, []int{1, 2, 3}, b.Interface())
}

func TestInferExpected(t *testing.T) {
	tests := []struct {
		json string
		want any
	}{
		{`true`, true},
		{`3`, 3},
		{`3.0`, 3},
		{`3.5`, 3.5},
		{`1e300`, 1e300},
		{`"s"`, "s"},
		{`[1, 2.5, "x", [false]]`, []any{1, 2.5, "x", []any{false}}},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			got, err := inferExpected(mustParse(t, tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interface())
		})
	}

	for _, src := range []string{`null`, `{"a": 1}`, `[null]`} {
		t.Run(src, func(t *testing.T) {
			_, err := inferExpected(mustParse(t, src))
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.UnsupportedCoercion))
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		want     bool
	}{
		{"int matches float", 3, 3.0, true},
		{"float matches int", 3.0, 3, true},
		{"int differs", 3, 4, false},
		{"float differs", 0.1, 0.2, false},
		{"uint matches int", uint(7), 7, true},
		{"negative int never matches uint", -1, uint64(math.MaxUint64), false},
		{"int32 matches int64", int32(5), int64(5), true},
		{"bools", true, true, true},
		{"strings", "abc", "abd", false},
		{"slices", []int{1, 2}, []any{1, 2.0}, true},
		{"slice lengths", []int{1, 2}, []any{1}, false},
		{"nested slices", [][]string{{"a"}}, []any{[]any{"a"}}, true},
		{"empty slices", []int{}, []any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := equal(reflect.ValueOf(tt.actual), reflect.ValueOf(tt.expected))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEqual_Unsupported(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
	}{
		{"string and int", "3", 3},
		{"bool and int", true, 1},
		{"slice and string", []int{1}, "1"},
		{"mismatched elements", []int{1, 2}, []any{1, "2", 3}},
		{"maps", map[string]int{}, map[string]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := equal(reflect.ValueOf(tt.actual), reflect.ValueOf(tt.expected))
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.UnsupportedComparison), "got %v", err)
		})
	}
}

func TestCheckComparable(t *testing.T) {
	intSlice := reflect.TypeOf([]int(nil))

	assert.NoError(t, checkComparable(reflect.TypeOf(0), reflect.ValueOf(2.5)))
	assert.NoError(t, checkComparable(intSlice, reflect.ValueOf([]any{1, 2})))
	assert.NoError(t, checkComparable(reflect.TypeOf(""), reflect.ValueOf("x")))

	err := checkComparable(intSlice, reflect.ValueOf([]any{1, "2"}))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.UnsupportedComparison))

	err = checkComparable(reflect.TypeOf(false), reflect.ValueOf(0))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.UnsupportedComparison))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{true, "true"},
		{-42, "-42"},
		{uint16(7), "7"},
		{2.5, "2.5"},
		{1e21, "1e+21"},
		{float32(0.1), "0.10000000149011612"},
		{`say "hi"`, `"say "hi""`},
		{[]int{1, 2}, "[1, 2]"},
		{[]any{"a", []any{true}}, `["a", [true]]`},
		{[]string{}, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(reflect.ValueOf(tt.value)))
		})
	}
}

func TestParseColourMode(t *testing.T) {
	for in, want := range map[string]ColourMode{
		"":        ColourAuto,
		"auto":    ColourAuto,
		"ALWAYS":  ColourAlways,
		" never ": ColourNever,
	} {
		got, ok := ParseColourMode(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseColourMode("sometimes")
	assert.False(t, ok)
}
