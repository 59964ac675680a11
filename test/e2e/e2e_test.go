package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/dsa/internal/analyzer"
	"github.com/mcncl/dsa/internal/harness"
	"github.com/mcncl/dsa/internal/parser"
)

func sortInts(nums []int) []int {
	out := make([]int, len(nums))
	copy(out, nums)
	sort.Ints(out)
	return out
}

// generateSortFixture writes a records fixture whose cases sort random
// integer slices. Every wrongEvery-th case gets a wrong expectation.
func generateSortFixture(t testing.TB, filePath string, caseCount, wrongEvery int) int {
	rng := rand.New(rand.NewSource(42))

	wrong := 0
	cases := make([]map[string]any, caseCount)
	for i := range cases {
		nums := make([]int, rng.Intn(20))
		for j := range nums {
			nums[j] = rng.Intn(2000) - 1000
		}
		expected := sortInts(nums)
		if wrongEvery > 0 && i%wrongEvery == 0 {
			expected = append(expected, 0)
			wrong++
		}
		cases[i] = map[string]any{"input": []any{nums}, "expected": expected}
	}

	jsonData, err := json.MarshalIndent(cases, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filePath, jsonData, 0644))
	return wrong
}

func TestEndToEnd_LargeFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SortInts.json")
	wrong := generateSortFixture(t, path, 500, 7)

	doc, err := parser.ParseFile(path)
	require.NoError(t, err)
	sig, err := analyzer.Infer(doc)
	require.NoError(t, err)
	assert.Equal(t, "func([]int) []int", sig.String())

	var out bytes.Buffer
	summary, err := harness.RunTests(sortInts, path, harness.WithOutput(&out))
	require.NoError(t, err)

	assert.Equal(t, 500, summary.Total)
	assert.Equal(t, 500-wrong, summary.Passed)
	assert.Equal(t, 500+2, strings.Count(out.String(), "\n"), "one line per case, a blank line and the summary")
	assert.Equal(t, wrong, strings.Count(out.String(), " FAILED\n"))
}

// TestEndToEnd_AgreesWithEncodingJSON parses documents produced by
// encoding/json and checks both decoders build the same tree.
func TestEndToEnd_AgreesWithEncodingJSON(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	documents := []any{
		generateNestedJSON(3, 3),
		generateWideJSON(200),
		[]any{"tab\there", "quote\"", "back\\slash", "newline\n", 1e-7, -0.0, 123456789.25},
	}
	for i := 0; i < 20; i++ {
		documents = append(documents, randomValue(rng, 4))
	}

	for i, doc := range documents {
		t.Run(fmt.Sprintf("document_%d", i), func(t *testing.T) {
			data, err := json.Marshal(doc)
			require.NoError(t, err)

			var want any
			require.NoError(t, json.Unmarshal(data, &want))

			got, err := parser.ParseBytes(data)
			require.NoError(t, err)
			assert.Equal(t, want, got.Interface())

			again, err := parser.ParseString(got.String())
			require.NoError(t, err)
			assert.True(t, got.Equal(again), "re-serialised text parses to an equal tree")
		})
	}
}

func randomValue(rng *rand.Rand, depth int) any {
	kind := rng.Intn(6)
	if depth == 0 {
		kind = rng.Intn(4)
	}
	switch kind {
	case 0:
		return nil
	case 1:
		return rng.Intn(2) == 1
	case 2:
		if rng.Intn(2) == 0 {
			return rng.Intn(1 << 20)
		}
		return rng.NormFloat64() * 1000
	case 3:
		return fmt.Sprintf("s%d %c", rng.Intn(1000), 'a'+rune(rng.Intn(26)))
	case 4:
		arr := make([]any, rng.Intn(5))
		for i := range arr {
			arr[i] = randomValue(rng, depth-1)
		}
		return arr
	default:
		obj := make(map[string]any)
		for i := rng.Intn(5); i > 0; i-- {
			obj[fmt.Sprintf("k%d", rng.Intn(10))] = randomValue(rng, depth-1)
		}
		return obj
	}
}

// TestEndToEnd_EdgeCases runs small fixtures through the whole pipeline
func TestEndToEnd_EdgeCases(t *testing.T) {
	identity := func(s string) string { return s }

	testCases := []struct {
		name     string
		json     string
		expected string
		isError  bool
	}{
		{
			name:     "EmptyRecords",
			json:     `[]`,
			expected: "\nPassed 0 out of 0 test cases.\n",
		},
		{
			name:     "EscapedStrings",
			json:     `[{"input": ["a\"b\\c"], "expected": "a\"b\\c"}]`,
			expected: `Input: ["a"b\c"] | Expected: "a"b\c" | Got: "a"b\c" PASSED`,
		},
		{
			name:     "UnicodeEscapeKeptVerbatim",
			json:     `[{"input": ["\u00e9"], "expected": "\u00e9"}]`,
			expected: `Input: ["\u00e9"] | Expected: "\u00e9" | Got: "\u00e9" PASSED`,
		},
		{
			name:     "WhitespaceEverywhere",
			json:     " \t\r\n[ { \"input\" : [ \"x\" ] , \"expected\" : \"x\" } ] \n",
			expected: "Passed 1 out of 1 test cases.",
		},
		{
			name:    "TrailingComma",
			json:    `[{"input": ["x"], "expected": "x"},]`,
			isError: true,
		},
		{
			name:    "TrailingGarbage",
			json:    `[{"input": ["x"], "expected": "x"}] x`,
			isError: true,
		},
		{
			name:    "WrongExpectedType",
			json:    `[{"input": ["x"], "expected": 1}]`,
			isError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fixture.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.json), 0644))

			var out bytes.Buffer
			_, err := harness.RunTests(identity, path, harness.WithOutput(&out))
			if tc.isError {
				assert.Error(t, err)
				assert.Empty(t, out.String())
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tc.expected)
		})
	}
}
