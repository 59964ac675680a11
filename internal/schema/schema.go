// Package schema checks that a parsed fixture document has one of the two
// supported shapes before any test case is prepared.
package schema

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mcncl/dsa/internal/errors"
	"github.com/mcncl/dsa/internal/models"
)

// Format identifies the shape of a fixture document.
type Format int

const (
	// FormatRecords is a list of {"input": [...], "expected": v} objects.
	FormatRecords Format = iota + 1
	// FormatPredicate is an object mapping input strings to expected booleans.
	FormatPredicate
)

func (f Format) String() string {
	switch f {
	case FormatRecords:
		return "records"
	case FormatPredicate:
		return "predicate"
	default:
		return "unknown"
	}
}

// Absolute resource URLs for the embedded schemas.
const (
	recordsURL   = "mem://dsa/records.json"
	predicateURL = "mem://dsa/predicate.json"
)

var (
	//go:embed schemas/records.json
	recordsSchemaJSON string
	//go:embed schemas/predicate.json
	predicateSchemaJSON string

	compileOnce     sync.Once
	recordsSchema   *jsonschema.Schema
	predicateSchema *jsonschema.Schema
)

func compiled() (*jsonschema.Schema, *jsonschema.Schema) {
	compileOnce.Do(func() {
		recordsSchema = jsonschema.MustCompileString(recordsURL, recordsSchemaJSON)
		predicateSchema = jsonschema.MustCompileString(predicateURL, predicateSchemaJSON)
	})
	return recordsSchema, predicateSchema
}

// Detect reports the fixture format implied by the top-level kind of doc.
func Detect(doc models.Value) (Format, error) {
	switch doc.Kind() {
	case models.ArrayKind:
		return FormatRecords, nil
	case models.ObjectKind:
		return FormatPredicate, nil
	default:
		return 0, errors.NewSchemaError(
			fmt.Sprintf("fixture must be an array of test cases or an object of predicate cases, got %s", doc.Kind()),
			nil,
		)
	}
}

// Validate detects the format of doc and checks it against that format's
// schema. Violations are reported as schema errors naming the first
// offending location.
func Validate(doc models.Value) (Format, error) {
	format, err := Detect(doc)
	if err != nil {
		return 0, err
	}

	records, predicate := compiled()
	s := records
	if format == FormatPredicate {
		s = predicate
	}

	if err := s.Validate(doc.Interface()); err != nil {
		var ve *jsonschema.ValidationError
		if stderrors.As(err, &ve) {
			leaf := deepestCause(ve)
			return 0, errors.NewSchemaError(
				fmt.Sprintf("%s fixture is invalid at '%s': %s", format, location(leaf.InstanceLocation), leaf.Message),
				err,
			)
		}
		return 0, errors.NewSchemaError(fmt.Sprintf("%s fixture is invalid", format), err)
	}
	return format, nil
}

func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

func location(ptr string) string {
	if ptr == "" {
		return "/"
	}
	return ptr
}
