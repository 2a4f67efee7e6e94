package question

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrNotQuiz is returned for well-formed documents whose type is not "quiz".
var ErrNotQuiz = errors.New("document is not a quiz question")

// ErrEmptyDocument is returned when the input holds no YAML document.
var ErrEmptyDocument = errors.New("empty document")

// ValidationError describes why a record was rejected.
type ValidationError struct {
	Check   string // Name of the failed check, e.g. "schema" or "answers"
	Message string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("check %q: %s", e.Check, e.Message)
}

// Parse decodes a single YAML question document, checks its type, validates
// it against RecordSchema and then against the semantic rules in Validate.
func Parse(data []byte) (Record, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, ErrEmptyDocument
		}
		return Record{}, fmt.Errorf("decode yaml: %w", err)
	}

	var doc any
	if err := node.Decode(&doc); err != nil {
		return Record{}, fmt.Errorf("decode yaml: %w", err)
	}
	fields, ok := doc.(map[string]any)
	if !ok {
		return Record{}, &ValidationError{Check: "schema", Message: "document is not a mapping"}
	}
	if t, _ := fields["type"].(string); t != TypeQuiz {
		return Record{}, ErrNotQuiz
	}

	if err := validateSchema(doc); err != nil {
		return Record{}, err
	}

	var rec Record
	if err := node.Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	if err := Validate(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Validate checks the rules the schema cannot express.
func Validate(r Record) error {
	if len(r.Answers) == 0 {
		return &ValidationError{Check: "answers", Message: "at least one answer is required"}
	}
	for _, a := range r.Answers {
		if a.Correct {
			return nil
		}
	}
	return &ValidationError{Check: "answers", Message: "no answer is marked correct"}
}
