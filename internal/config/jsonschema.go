package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema is the JSON Schema every configuration document must satisfy.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "dir": {"type": "string"},
        "rowPrefix": {"type": "string"},
        "summaryPrefix": {"type": "string"},
        "summaryJson": {"type": "boolean"}
      }
    },
    "logging": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"type": "string"},
        "file": {"type": "string"}
      }
    },
    "status": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "noColor": {"type": "boolean"},
        "quiet": {"type": "boolean"}
      }
    },
    "simulate": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "fps": {"type": "number"},
        "jitter": {"type": "number"},
        "stutterEvery": {"type": "integer"},
        "duration": {"type": ["string", "integer"]},
        "toggleEvery": {"type": ["string", "integer"]},
        "seed": {"type": "integer"}
      }
    }
  }
}`

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

func schema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("config.json", strings.NewReader(configSchema)); err != nil {
			compiledSchemaErr = fmt.Errorf("invalid schema: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile("config.json")
		if compiledSchemaErr != nil {
			compiledSchemaErr = fmt.Errorf("invalid schema: %w", compiledSchemaErr)
		}
	})
	return compiledSchema, compiledSchemaErr
}

// CheckSchema validates a decoded JSON document against the configuration
// schema. Schema violations are returned as *ValidationErrors.
func CheckSchema(doc interface{}) error {
	s, err := schema()
	if err != nil {
		return err
	}

	err = s.Validate(doc)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	errs := &ValidationErrors{}
	collectSchemaErrors(validationErr, errs)
	if !errs.HasErrors() {
		errs.Add("", validationErr.Error())
	}
	return errs
}

// collectSchemaErrors flattens the leaf causes of a schema validation error.
func collectSchemaErrors(err *jsonschema.ValidationError, errs *ValidationErrors) {
	if len(err.Causes) == 0 {
		field := strings.TrimPrefix(strings.ReplaceAll(err.InstanceLocation, "/", "."), ".")
		errs.Add(field, err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, errs)
	}
}
