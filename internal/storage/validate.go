package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema describes a single task record. Every line of the task
// file must validate against it.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["kind", "description", "done"],
  "properties": {
    "kind": {"enum": ["todo", "deadline", "event"]},
    "description": {"type": "string", "minLength": 1},
    "done": {"type": "boolean"},
    "by": {"type": "string", "minLength": 1},
    "from": {"type": "string", "minLength": 1},
    "to": {"type": "string", "minLength": 1}
  },
  "additionalProperties": false,
  "allOf": [
    {
      "if": {"properties": {"kind": {"const": "deadline"}}},
      "then": {"required": ["by"]}
    },
    {
      "if": {"properties": {"kind": {"const": "event"}}},
      "then": {"required": ["from", "to"]}
    }
  ]
}`

// ValidationError reports a task file line that failed schema validation.
type ValidationError struct {
	Line int
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks every line of the task file against the record schema.
// A missing file validates trivially. The returned slice is empty when
// the file is valid.
func (s *Store) Validate() ([]error, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("task-record.json", strings.NewReader(recordSchema)); err != nil {
		return nil, fmt.Errorf("load record schema: %w", err)
	}
	schema, err := compiler.Compile("task-record.json")
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}

	var errs []error
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			errs = append(errs, &ValidationError{Line: lineNo, Err: fmt.Errorf("invalid JSON: %w", err)})
			continue
		}
		if err := schema.Validate(record); err != nil {
			errs = append(errs, &ValidationError{Line: lineNo, Err: flattenSchemaError(err)})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan task file: %w", err)
	}
	return errs, nil
}

// flattenSchemaError reduces a jsonschema validation error tree to its
// leaf causes, which carry the useful messages.
func flattenSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	leaves := collectLeaves(ve, nil)
	if len(leaves) == 0 {
		return err
	}
	msgs := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		msgs = append(msgs, leaf.Message)
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func collectLeaves(err *jsonschema.ValidationError, leaves []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return append(leaves, err)
	}
	for _, cause := range err.Causes {
		leaves = collectLeaves(cause, leaves)
	}
	return leaves
}
