// Package harness runs a solution function against the cases of a JSON
// fixture and prints a pass/fail trace.
//
// Every case is prepared when the fixture is loaded: arguments are coerced
// to the solution's parameter types and expected values are checked for
// comparability with its result type. A malformed fixture therefore fails
// before any case is invoked or printed.
package harness

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"go.uber.org/zap"

	"github.com/mcncl/dsa/internal/errors"
	"github.com/mcncl/dsa/internal/models"
	"github.com/mcncl/dsa/internal/parser"
	"github.com/mcncl/dsa/internal/schema"
)

// Case is one prepared test case.
type Case struct {
	// Index is the position of the case in the fixture.
	Index int
	// Label names the case in diagnostics: "/3" for records, the key for predicates.
	Label    string
	Input    []models.Value
	Expected reflect.Value
}

// Harness binds one solution to the cases of one fixture.
type Harness struct {
	fn            reflect.Value
	sig           models.Signature
	format        schema.Format
	cases         []Case
	logger        *zap.Logger
	out           io.Writer
	colour        ColourMode
	maxInputWidth int
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithOutput sets where the trace is written. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(h *Harness) {
		if w != nil {
			h.out = w
		}
	}
}

// WithColour sets when verdicts are coloured.
func WithColour(mode ColourMode) Option {
	return func(h *Harness) {
		h.colour = mode
	}
}

// WithMaxInputWidth truncates the input column to width display cells.
// Zero disables truncation.
func WithMaxInputWidth(width int) Option {
	return func(h *Harness) {
		if width > 0 {
			h.maxInputWidth = width
		}
	}
}

// New binds fn, which must be a function (or a value with a Solution
// method) returning exactly one value of a supported type.
func New(fn any, opts ...Option) (*Harness, error) {
	bound, err := bind(fn)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		fn:     bound,
		sig:    signatureOf(bound.Type()),
		logger: zap.NewNop(),
		out:    os.Stdout,
		colour: ColourNever,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Signature returns the bound solution's signature.
func (h *Harness) Signature() models.Signature {
	return h.sig
}

// Cases returns the prepared cases in fixture order.
func (h *Harness) Cases() []Case {
	return h.cases
}

// Format returns the format of the loaded fixture.
func (h *Harness) Format() schema.Format {
	return h.format
}

// Load parses the fixture at path and prepares its cases.
func (h *Harness) Load(path string) error {
	doc, err := parser.ParseFile(path)
	if err != nil {
		return err
	}
	if err := h.LoadValue(doc); err != nil {
		return err
	}
	h.logger.Debug("fixture loaded",
		zap.String("path", path),
		zap.Stringer("format", h.format),
		zap.Int("cases", len(h.cases)),
	)
	return nil
}

// LoadValue validates an already parsed fixture document and prepares its
// cases, replacing any previously loaded ones.
func (h *Harness) LoadValue(doc models.Value) error {
	format, err := schema.Validate(doc)
	if err != nil {
		return err
	}

	var cases []Case
	switch format {
	case schema.FormatRecords:
		cases, err = h.prepareRecords(doc)
	case schema.FormatPredicate:
		cases, err = h.preparePredicates(doc)
	default:
		err = errors.NewSchemaError(fmt.Sprintf("unsupported fixture format %s", format), nil)
	}
	if err != nil {
		return err
	}

	h.format = format
	h.cases = cases
	return nil
}

func (h *Harness) prepareRecords(doc models.Value) ([]Case, error) {
	records, err := doc.Array()
	if err != nil {
		return nil, errors.NewSchemaError("records fixture must be an array", err)
	}

	t := h.fn.Type()
	cases := make([]Case, 0, len(records))
	for i, rec := range records {
		label := fmt.Sprintf("/%d", i)

		inputValue, ok := rec.Get("input")
		if !ok {
			return nil, errors.NewSchemaError(fmt.Sprintf("case %s has no input", label), nil)
		}
		input, err := inputValue.Array()
		if err != nil {
			return nil, errors.NewSchemaError(fmt.Sprintf("input of case %s must be an array", label), err)
		}
		if len(input) != t.NumIn() {
			return nil, errors.NewArgumentCountError(
				fmt.Sprintf("case %s has %d input values but %s takes %d", label, len(input), h.sig, t.NumIn()),
				nil,
			)
		}

		expectedValue, ok := rec.Get("expected")
		if !ok {
			return nil, errors.NewSchemaError(fmt.Sprintf("case %s has no expected value", label), nil)
		}

		c, err := h.prepare(i, label, input, expectedValue)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (h *Harness) preparePredicates(doc models.Value) ([]Case, error) {
	obj, err := doc.Object()
	if err != nil {
		return nil, errors.NewSchemaError("predicate fixture must be an object", err)
	}

	t := h.fn.Type()
	if t.NumIn() != 1 {
		return nil, errors.NewArgumentCountError(
			fmt.Sprintf("predicate fixtures need a single-argument solution, %s takes %d", h.sig, t.NumIn()),
			nil,
		)
	}
	if t.In(0).Kind() != reflect.String || t.Out(0).Kind() != reflect.Bool {
		return nil, errors.NewCoercionError(
			fmt.Sprintf("predicate fixtures need a string to bool solution, got %s", h.sig),
			nil,
		)
	}

	cases := make([]Case, 0, obj.Len())
	for i, key := range obj.Keys() {
		expected, _ := obj.Get(key)
		c, err := h.prepare(i, key, []models.Value{models.NewString(key)}, expected)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (h *Harness) prepare(index int, label string, input []models.Value, expectedValue models.Value) (Case, error) {
	if _, err := h.arguments(input); err != nil {
		return Case{}, errors.Annotate("case "+label, err)
	}

	expected, err := inferExpected(expectedValue)
	if err != nil {
		return Case{}, errors.Annotate("case "+label, err)
	}
	if err := checkComparable(h.fn.Type().Out(0), expected); err != nil {
		return Case{}, errors.Annotate("case "+label, err)
	}

	return Case{
		Index:    index,
		Label:    label,
		Input:    input,
		Expected: expected,
	}, nil
}

// arguments coerces input into a fresh argument tuple for the solution.
func (h *Harness) arguments(input []models.Value) ([]reflect.Value, error) {
	t := h.fn.Type()
	args := make([]reflect.Value, len(input))
	for i, v := range input {
		arg, err := coerce(v, t.In(i))
		if err != nil {
			return nil, errors.Annotate(fmt.Sprintf("argument %d", i), err)
		}
		args[i] = arg
	}
	return args, nil
}

// Run invokes the solution on every prepared case in fixture order, writing
// one trace line per case followed by the summary. A case whose result does
// not match is a failure, not an error.
func (h *Harness) Run() (Summary, error) {
	rep := newReporter(h.out, h.colour, h.maxInputWidth)
	summary := Summary{}

	for _, c := range h.cases {
		args, err := h.arguments(c.Input)
		if err != nil {
			return summary, errors.Annotate("case "+c.Label, err)
		}
		// Rendered before the call so in-place mutation by the solution
		// does not change what is printed.
		input := formatArgs(args)

		got := h.fn.Call(args)[0]

		passed, err := equal(got, c.Expected)
		if err != nil {
			return summary, errors.Annotate("case "+c.Label, err)
		}

		summary.Total++
		if passed {
			summary.Passed++
		}
		h.logger.Debug("case finished",
			zap.String("case", c.Label),
			zap.Bool("passed", passed),
		)

		if err := rep.caseLine(input, formatValue(c.Expected), formatValue(got), passed); err != nil {
			return summary, errors.NewOutputError("failed to write trace", err)
		}
	}

	if err := rep.summary(summary); err != nil {
		return summary, errors.NewOutputError("failed to write summary", err)
	}
	return summary, nil
}

// RunTests binds fn, loads the fixture at path and runs every case.
func RunTests(fn any, path string, opts ...Option) (Summary, error) {
	h, err := New(fn, opts...)
	if err != nil {
		return Summary{}, err
	}
	if err := h.Load(path); err != nil {
		return Summary{}, err
	}
	return h.Run()
}
