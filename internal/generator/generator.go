package generator

import (
	"bytes"
	"fmt"
	"go/token"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/dsa/internal/models"
)

// RegistryPackage is the import path of the solution registry.
const RegistryPackage = "github.com/mcncl/dsa/internal/solutions"

// StubSpec describes a solution stub to generate
type StubSpec struct {
	Package   string
	Category  string
	Name      string
	Signature models.Signature
	// Fixture is mentioned in the doc comment when set.
	Fixture string
}

// Generator writes solution stubs
type Generator struct{}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateStub is shorthand for NewGenerator().GenerateStub(spec).
func GenerateStub(spec StubSpec) (string, error) {
	return NewGenerator().GenerateStub(spec)
}

// GenerateStub writes a Go file holding a solution function with the spec's
// signature that returns the zero value, plus an init func registering it.
func (g *Generator) GenerateStub(spec StubSpec) (string, error) {
	name := strcase.ToCamel(spec.Name)
	if !token.IsIdentifier(name) || !token.IsExported(name) {
		return "", fmt.Errorf("%q is not a valid solution name", spec.Name)
	}
	pkg := spec.Package
	if pkg == "" {
		pkg = "solutions"
	}
	if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("%q is not a valid package name", pkg)
	}
	category := strings.ToLower(strings.TrimSpace(spec.Category))
	if category == "" {
		return "", fmt.Errorf("solution %s has no category", name)
	}

	register := "Register"
	imports := map[string]struct{}{}
	if pkg != "solutions" {
		register = "solutions.Register"
		imports[RegistryPackage] = struct{}{}
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("package %s\n", pkg))
	writeImports(&buf, imports)

	buf.WriteString("\nfunc init() {\n")
	buf.WriteString(fmt.Sprintf("\t%s(%q, %q, %s)\n", register, category, name, name))
	buf.WriteString("}\n\n")

	if spec.Fixture != "" {
		buf.WriteString(fmt.Sprintf("// %s solves the cases in %s.\n", name, spec.Fixture))
	}

	params := paramNames(spec.Signature)
	buf.WriteString(fmt.Sprintf("func %s(", name))
	for i, p := range spec.Signature.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(fmt.Sprintf("%s %s", params[i], p.GoType()))
	}
	buf.WriteString(fmt.Sprintf(") %s {\n", spec.Signature.Result.GoType()))
	buf.WriteString(fmt.Sprintf("\treturn %s\n", zeroValue(spec.Signature.Result)))
	buf.WriteString("}\n")

	return buf.String(), nil
}

func writeImports(buf *bytes.Buffer, imports map[string]struct{}) {
	if len(imports) == 0 {
		return
	}

	paths := make([]string, 0, len(imports))
	for imp := range imports {
		paths = append(paths, imp)
	}
	sort.Strings(paths)

	buf.WriteString("\nimport (\n")
	for _, imp := range paths {
		buf.WriteString(fmt.Sprintf("\t%q\n", imp))
	}
	buf.WriteString(")\n")
}

// paramNames picks a, b, c ... for parameters, or s for a lone string.
func paramNames(sig models.Signature) []string {
	if sig.Arity() == 1 && sig.Params[0].Kind == models.StringType {
		return []string{"s"}
	}
	names := make([]string, sig.Arity())
	for i := range names {
		if i < 26 {
			names[i] = string(rune('a' + i))
		} else {
			names[i] = fmt.Sprintf("p%d", i)
		}
	}
	return names
}

func zeroValue(t models.TypeInfo) string {
	switch t.Kind {
	case models.IntType, models.FloatType:
		return "0"
	case models.StringType:
		return `""`
	case models.BoolType:
		return "false"
	default:
		return "nil"
	}
}
