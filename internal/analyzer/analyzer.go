package analyzer

import (
	"fmt"
	"math"

	"github.com/mcncl/dsa/internal/config"
	"github.com/mcncl/dsa/internal/errors"
	"github.com/mcncl/dsa/internal/models"
	"github.com/mcncl/dsa/internal/schema"
)

// Analyzer infers a solution signature from the cases of a fixture.
type Analyzer struct {
	// defaultElem is used for slices whose element type no case reveals,
	// such as an input that is always [].
	defaultElem models.TypeKind
}

// NewAnalyzer creates an Analyzer that types unknown slice elements as int.
func NewAnalyzer() *Analyzer {
	return &Analyzer{defaultElem: models.IntType}
}

// NewAnalyzerWithConfig creates an Analyzer using the stub settings of cfg.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	a := NewAnalyzer()
	if cfg != nil {
		if kind, ok := parseKind(cfg.Stub.DefaultElement); ok {
			a.defaultElem = kind
		}
	}
	return a
}

func parseKind(s string) (models.TypeKind, bool) {
	switch models.TypeKind(s) {
	case models.IntType, models.FloatType, models.StringType, models.BoolType:
		return models.TypeKind(s), true
	case "float":
		return models.FloatType, true
	default:
		return "", false
	}
}

// Infer is shorthand for NewAnalyzer().Infer(doc).
func Infer(doc models.Value) (models.Signature, error) {
	return NewAnalyzer().Infer(doc)
}

// Infer validates doc as a fixture and derives the signature a solution
// needs to be run against it. Each parameter type is the merge of the
// types of that input position across all cases; the result type is the
// merge of every expected value.
func (a *Analyzer) Infer(doc models.Value) (models.Signature, error) {
	format, err := schema.Validate(doc)
	if err != nil {
		return models.Signature{}, err
	}

	if format == schema.FormatPredicate {
		return models.Signature{
			Params: []models.TypeInfo{{Kind: models.StringType}},
			Result: models.TypeInfo{Kind: models.BoolType},
		}, nil
	}

	records, err := doc.Array()
	if err != nil {
		return models.Signature{}, err
	}
	if len(records) == 0 {
		return models.Signature{}, errors.NewSchemaError("fixture has no cases to infer a signature from", nil)
	}

	var sig models.Signature
	for i, rec := range records {
		inputValue, _ := rec.Get("input")
		input, err := inputValue.Array()
		if err != nil {
			return models.Signature{}, err
		}
		expected, _ := rec.Get("expected")

		if i == 0 {
			sig.Params = make([]models.TypeInfo, len(input))
		} else if len(input) != len(sig.Params) {
			return models.Signature{}, errors.NewArgumentCountError(
				fmt.Sprintf("case /%d has %d input values but case /0 has %d", i, len(input), len(sig.Params)),
				nil,
			)
		}

		for j, v := range input {
			t, err := typeOf(v)
			if err != nil {
				return models.Signature{}, errors.Annotate(fmt.Sprintf("case /%d input %d", i, j), err)
			}
			if i == 0 {
				sig.Params[j] = t
				continue
			}
			if sig.Params[j], err = merge(sig.Params[j], t); err != nil {
				return models.Signature{}, errors.Annotate(fmt.Sprintf("case /%d input %d", i, j), err)
			}
		}

		t, err := typeOf(expected)
		if err != nil {
			return models.Signature{}, errors.Annotate(fmt.Sprintf("case /%d expected", i), err)
		}
		if i == 0 {
			sig.Result = t
		} else if sig.Result, err = merge(sig.Result, t); err != nil {
			return models.Signature{}, errors.Annotate(fmt.Sprintf("case /%d expected", i), err)
		}
	}

	for i := range sig.Params {
		sig.Params[i] = a.resolve(sig.Params[i])
	}
	sig.Result = a.resolve(sig.Result)
	return sig, nil
}

// resolve replaces unknown slice elements with the default element kind.
func (a *Analyzer) resolve(t models.TypeInfo) models.TypeInfo {
	if t.Kind != models.SliceType {
		return t
	}
	if t.Elem == nil {
		return models.TypeInfo{Kind: models.SliceType, Elem: &models.TypeInfo{Kind: a.defaultElem}}
	}
	elem := a.resolve(*t.Elem)
	return models.TypeInfo{Kind: models.SliceType, Elem: &elem}
}

// merge widens a and b to a common type: int and float64 merge to float64,
// slices merge element-wise and an unknown element takes the other side.
func merge(a, b models.TypeInfo) (models.TypeInfo, error) {
	switch {
	case a.Kind == b.Kind && a.Kind != models.SliceType:
		return a, nil
	case isNumeric(a.Kind) && isNumeric(b.Kind):
		return models.TypeInfo{Kind: models.FloatType}, nil
	case a.Kind == models.SliceType && b.Kind == models.SliceType:
		if a.Elem == nil {
			return b, nil
		}
		if b.Elem == nil {
			return a, nil
		}
		elem, err := merge(*a.Elem, *b.Elem)
		if err != nil {
			return models.TypeInfo{}, err
		}
		return models.TypeInfo{Kind: models.SliceType, Elem: &elem}, nil
	default:
		return models.TypeInfo{}, errors.NewTypeMismatchError(
			fmt.Sprintf("values of type %s and %s cannot share a parameter", a.GoType(), b.GoType()),
			errors.ErrInconsistentFixture,
		)
	}
}

func isNumeric(k models.TypeKind) bool {
	return k == models.IntType || k == models.FloatType
}

func typeOf(v models.Value) (models.TypeInfo, error) {
	return models.Accept[models.TypeInfo](v, typeVisitor{})
}

// typeVisitor maps one fixture value onto a type. Array elements are
// merged, so [1, 2.5] is []float64.
type typeVisitor struct{}

func (typeVisitor) Null() (models.TypeInfo, error) {
	return models.TypeInfo{}, errors.NewCoercionError("null has no parameter type", nil)
}

func (typeVisitor) Bool(bool) (models.TypeInfo, error) {
	return models.TypeInfo{Kind: models.BoolType}, nil
}

func (typeVisitor) Number(n float64) (models.TypeInfo, error) {
	if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
		return models.TypeInfo{Kind: models.IntType}, nil
	}
	return models.TypeInfo{Kind: models.FloatType}, nil
}

func (typeVisitor) String(string) (models.TypeInfo, error) {
	return models.TypeInfo{Kind: models.StringType}, nil
}

func (t typeVisitor) Array(values []models.Value) (models.TypeInfo, error) {
	var elem *models.TypeInfo
	for i, v := range values {
		et, err := models.Accept[models.TypeInfo](v, t)
		if err != nil {
			return models.TypeInfo{}, errors.Annotate(fmt.Sprintf("element %d", i), err)
		}
		if elem == nil {
			elem = &et
			continue
		}
		merged, err := merge(*elem, et)
		if err != nil {
			return models.TypeInfo{}, errors.Annotate(fmt.Sprintf("element %d", i), err)
		}
		elem = &merged
	}
	return models.TypeInfo{Kind: models.SliceType, Elem: elem}, nil
}

func (typeVisitor) Object(*models.Object) (models.TypeInfo, error) {
	return models.TypeInfo{}, errors.NewCoercionError("objects have no parameter type", nil)
}
