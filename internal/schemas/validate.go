// Package schemas validates structured LLM output against JSON Schemas
// before the payloads are decoded. A schema failure is treated the same as
// a parse failure by callers: the documented fallback record is used.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError reports why a payload did not match its schema.
type ValidationError struct {
	Schema string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema %s: %s", e.Schema, strings.Join(e.Errors, "; "))
}

// ValidateEnrichment checks a lead-enrichment payload.
func ValidateEnrichment(payload []byte) error {
	return validate("enrichment.schema.json", payload)
}

// ValidateJobAnalysis checks a job-analysis payload.
func ValidateJobAnalysis(payload []byte) error {
	return validate("job_analysis.schema.json", payload)
}

func validate(name string, payload []byte) error {
	schemaData, err := schemaFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaData)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", name, err)
	}

	if !result.Valid() {
		ve := &ValidationError{Schema: name}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return ve
	}

	return nil
}
