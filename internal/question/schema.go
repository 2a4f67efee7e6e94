package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchemaURL identifies the record schema inside the compiler.
const recordSchemaURL = "schema://quiz-question.json"

// RecordSchema is the structural schema every quiz document must satisfy.
// Unknown fields are allowed; authors attach free-form metadata.
var RecordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type":        map[string]any{"type": "string", "const": TypeQuiz},
		"id":          map[string]any{"type": "string"},
		"followup_to": map[string]any{"type": "string"},
		"starter":     map[string]any{"type": "boolean"},
		"title":       map[string]any{"type": "string"},
		"question":    map[string]any{"type": "string"},
		"context":     map[string]any{"type": "string"},
		"level":       map[string]any{"type": "string"},
		"answers": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":    map[string]any{"type": "string"},
					"correct": map[string]any{"type": "boolean"},
					"points":  map[string]any{"type": "integer", "minimum": 0},
					"message": map[string]any{"type": "string"},
				},
				"required": []any{"text"},
			},
		},
		"random_answer_order": map[string]any{"type": "boolean"},
		"allow_retry":         map[string]any{"type": "boolean"},
		"multiple_correct":    map[string]any{"type": "boolean"},
		"meta": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"multiple_correct": map[string]any{"type": "boolean"},
			},
		},
	},
	"required": []any{"type", "answers"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// recordSchema returns the compiled RecordSchema, compiling it on first use.
func recordSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		def, err := toJSONValue(RecordSchema)
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(recordSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateSchema checks a decoded YAML document against RecordSchema.
func validateSchema(doc any) error {
	schema, err := recordSchema()
	if err != nil {
		return fmt.Errorf("compile record schema: %w", err)
	}
	// The validator wants JSON-shaped values (float64 numbers, map[string]any),
	// so the YAML tree goes through a JSON round trip first.
	value, err := toJSONValue(doc)
	if err != nil {
		return &ValidationError{Check: "schema", Message: err.Error()}
	}
	if err := schema.Validate(value); err != nil {
		return &ValidationError{Check: "schema", Message: err.Error()}
	}
	return nil
}

func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
