package formatter

import (
	"fmt"
	"go/format"
	"regexp"
	"sort"
	"strings"
)

var importBlock = regexp.MustCompile(`(?s)import\s*\((.+?)\)`)

// Formatter formats generated Go source
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format is shorthand for NewFormatter().Format(code).
func Format(code string) (string, error) {
	return NewFormatter().Format(code)
}

// Format runs gofmt over code and groups the import block into standard
// library imports followed by everything else.
func (f *Formatter) Format(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	formatted, err := format.Source([]byte(code))
	if err != nil {
		return "", fmt.Errorf("failed to parse Go code: %w", err)
	}

	return f.formatImports(string(formatted)), nil
}

// formatImports sorts the first import block, standard library first and a
// blank line before the rest. Comments inside the block are dropped.
func (f *Formatter) formatImports(code string) string {
	match := importBlock.FindStringSubmatchIndex(code)
	if match == nil {
		return code
	}

	var std, other []string
	for _, line := range strings.Split(code[match[2]:match[3]], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if isStdlib(line) {
			std = append(std, line)
		} else {
			other = append(other, line)
		}
	}
	sort.Slice(std, func(i, j int) bool { return importPath(std[i]) < importPath(std[j]) })
	sort.Slice(other, func(i, j int) bool { return importPath(other[i]) < importPath(other[j]) })

	var b strings.Builder
	b.WriteString("import (\n")
	for _, imp := range std {
		b.WriteString("\t" + imp + "\n")
	}
	if len(std) > 0 && len(other) > 0 {
		b.WriteString("\n")
	}
	for _, imp := range other {
		b.WriteString("\t" + imp + "\n")
	}
	b.WriteString(")")

	return code[:match[0]] + b.String() + code[match[1]:]
}

// importPath strips an optional name and the quotes from an import spec.
func importPath(spec string) string {
	if i := strings.IndexByte(spec, '"'); i >= 0 {
		spec = spec[i:]
	}
	return strings.Trim(spec, `"`)
}

// isStdlib reports whether the first path element has no dot.
func isStdlib(spec string) bool {
	first, _, _ := strings.Cut(importPath(spec), "/")
	return !strings.Contains(first, ".")
}
