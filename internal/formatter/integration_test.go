package formatter

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/dsa/internal/analyzer"
	"github.com/mcncl/dsa/internal/generator"
	jsonparser "github.com/mcncl/dsa/internal/parser"
)

func TestIntegration_GeneratedStubIsValidGo(t *testing.T) {
	fixtures := []string{
		`{"abc": true, "aab": false}`,
		`[{"input": [[1.5, 2], "x", true], "expected": [["a"]]}]`,
		`[{"input": [], "expected": 7}]`,
	}

	for _, fixture := range fixtures {
		t.Run(fixture, func(t *testing.T) {
			doc, err := jsonparser.ParseString(fixture)
			require.NoError(t, err)

			sig, err := analyzer.Infer(doc)
			require.NoError(t, err)

			for _, pkg := range []string{"solutions", "puzzles"} {
				code, err := generator.GenerateStub(generator.StubSpec{
					Package:   pkg,
					Category:  "misc",
					Name:      "Probe",
					Signature: sig,
				})
				require.NoError(t, err)

				formatted, err := Format(code)
				require.NoError(t, err)
				assert.Equal(t, code, formatted, "generated stubs are already gofmt clean")

				_, err = parser.ParseFile(token.NewFileSet(), "probe.go", formatted, parser.AllErrors)
				assert.NoError(t, err)
			}
		})
	}
}
