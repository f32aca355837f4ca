// Package schemas validates agent JSON payloads against embedded JSON Schemas.
// Every LLM response is checked here before it is accepted as a TaskResult;
// a payload that fails validation is treated as malformed backend output.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("payload does not match schema %s:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing a schema itself.
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validate checks raw JSON bytes against the named embedded schema
// (e.g. "resume_score"). It returns a *ValidationError when the payload does
// not conform, a *SchemaLoadError when the schema itself is broken, and nil
// on success.
func Validate(schemaName string, payload []byte) error {
	filename := schemaName + ".schema.json"
	schemaBytes, err := schemaFiles.ReadFile(filename)
	if err != nil {
		return &SchemaLoadError{Schema: schemaName, Message: "schema not embedded", Cause: err}
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// gojsonschema returns a plain error both for unparseable schemas and
		// unparseable documents; treat a broken document as a validation
		// failure, not a schema problem.
		if strings.Contains(err.Error(), "invalid character") || strings.Contains(err.Error(), "unexpected end") {
			return &ValidationError{
				Schema: schemaName,
				Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
			}
		}
		return &SchemaLoadError{Schema: schemaName, Message: "validate failed", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: schemaName}
	for _, resultErr := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return ve
}
