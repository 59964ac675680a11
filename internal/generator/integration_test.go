package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/dsa/internal/analyzer"
	"github.com/mcncl/dsa/internal/parser"
)

func TestIntegration_FixtureToStub(t *testing.T) {
	fixture := `[
		{"input": [[1, 2, 3], 2.5], "expected": [[1], [2, 3]]},
		{"input": [[], 0], "expected": []}
	]`

	doc, err := parser.ParseString(fixture)
	require.NoError(t, err)

	sig, err := analyzer.Infer(doc)
	require.NoError(t, err)
	assert.Equal(t, "func([]int, float64) [][]int", sig.String())

	code, err := GenerateStub(StubSpec{Category: "arrays", Name: "split-at", Signature: sig})
	require.NoError(t, err)

	assert.Contains(t, code, `Register("arrays", "SplitAt", SplitAt)`)
	assert.Contains(t, code, "func SplitAt(a []int, b float64) [][]int {")
}

func TestIntegration_ShippedFixtures(t *testing.T) {
	tests := []struct {
		path      string
		signature string
	}{
		{filepath.Join("..", "..", "tests", "arrays", "IsUnique.json"), "func IsUnique(s string) bool {"},
		{filepath.Join("..", "..", "tests", "codeforces", "Abbreviate.json"), "func Abbreviate(s string) string {"},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			if _, err := os.Stat(tt.path); err != nil {
				t.Skipf("fixture not available: %v", err)
			}

			doc, err := parser.ParseFile(tt.path)
			require.NoError(t, err)

			sig, err := analyzer.Infer(doc)
			require.NoError(t, err)

			name := filepath.Base(tt.path)
			name = name[:len(name)-len(filepath.Ext(name))]
			code, err := GenerateStub(StubSpec{Category: "check", Name: name, Signature: sig})
			require.NoError(t, err)
			assert.Contains(t, code, tt.signature)
		})
	}
}
