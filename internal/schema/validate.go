package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator checks decoded documents against one compiled JSON Schema.
type Validator struct {
	s *jsonschema.Schema
}

func Compile(name string, schemaJSON json.RawMessage) (*Validator, error) {
	if len(schemaJSON) == 0 {
		return nil, fmt.Errorf("schema %s is empty", name)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("schema resource: %w", err)
	}
	s, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{s: s}, nil
}

func MustCompile(name string, schemaJSON json.RawMessage) *Validator {
	v, err := Compile(name, schemaJSON)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate parses raw and validates it. A nil Validator accepts any valid JSON.
func (v *Validator) Validate(raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("empty json")
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if v == nil {
		return nil
	}
	return v.s.Validate(doc)
}
