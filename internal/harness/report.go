package harness

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

// ANSI escapes used for the case verdict.
const (
	colourReset = "\033[0m"
	colourRed   = "\033[31m"
	colourGreen = "\033[32m"
)

// ColourMode selects whether verdicts are coloured.
type ColourMode string

const (
	ColourAuto   ColourMode = "auto"
	ColourAlways ColourMode = "always"
	ColourNever  ColourMode = "never"
)

// ParseColourMode accepts auto, always and never. An empty string is auto.
func ParseColourMode(s string) (ColourMode, bool) {
	switch ColourMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ColourAuto:
		return ColourAuto, true
	case ColourAlways:
		return ColourAlways, true
	case ColourNever:
		return ColourNever, true
	default:
		return "", false
	}
}

// enabled resolves auto against w: only a terminal gets colour.
func (m ColourMode) enabled(w io.Writer) bool {
	switch m {
	case ColourAlways:
		return true
	case ColourNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Summary is the outcome of a run.
type Summary struct {
	Passed int
	Total  int
}

// Failed returns the number of cases whose result did not match.
func (s Summary) Failed() int {
	return s.Total - s.Passed
}

func (s Summary) String() string {
	return fmt.Sprintf("Passed %d out of %d test cases.", s.Passed, s.Total)
}

// formatValue renders a coerced or returned value for the trace.
func formatValue(v reflect.Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v reflect.Value) {
	v = deref(v)
	if !v.IsValid() {
		sb.WriteString("null")
		return
	}

	switch familyOf(v.Kind()) {
	case familyBool:
		sb.WriteString(strconv.FormatBool(v.Bool()))
	case familyInt:
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case familyUint:
		sb.WriteString(strconv.FormatUint(v.Uint(), 10))
	case familyFloat:
		sb.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case familyString:
		sb.WriteByte('"')
		sb.WriteString(v.String())
		sb.WriteByte('"')
	case familySlice:
		sb.WriteByte('[')
		writeList(sb, v)
		sb.WriteByte(']')
	default:
		fmt.Fprintf(sb, "%v", v.Interface())
	}
}

func writeList(sb *strings.Builder, v reflect.Value) {
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeValue(sb, v.Index(i))
	}
}

// formatArgs renders an argument tuple without the surrounding brackets.
func formatArgs(args []reflect.Value) string {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeValue(&sb, a)
	}
	return sb.String()
}

// reporter writes the per-case trace and the summary.
type reporter struct {
	out           io.Writer
	colour        bool
	maxInputWidth int
}

func newReporter(out io.Writer, mode ColourMode, maxInputWidth int) *reporter {
	return &reporter{
		out:           out,
		colour:        mode.enabled(out),
		maxInputWidth: maxInputWidth,
	}
}

func (r *reporter) input(args string) string {
	if r.maxInputWidth > 0 {
		return runewidth.Truncate(args, r.maxInputWidth, "...")
	}
	return args
}

func (r *reporter) verdict(passed bool) string {
	word, colour := "FAILED", colourRed
	if passed {
		word, colour = "PASSED", colourGreen
	}
	if !r.colour {
		return word
	}
	return colour + word + colourReset
}

func (r *reporter) caseLine(input, expected, got string, passed bool) error {
	_, err := fmt.Fprintf(r.out, "Input: [%s] | Expected: %s | Got: %s %s\n",
		r.input(input), expected, got, r.verdict(passed))
	return err
}

func (r *reporter) summary(s Summary) error {
	_, err := fmt.Fprintf(r.out, "\n%s\n", s)
	return err
}
