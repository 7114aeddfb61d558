package validation

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ValidationError represents a parameter validation error
type ValidationError struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Validator checks parameters against a resolved JSON Schema
type Validator struct {
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
}

// NewValidator resolves schema once so it can be reused across calls.
// A nil schema accepts any parameters.
func NewValidator(schema *jsonschema.Schema) (*Validator, error) {
	v := &Validator{schema: schema}
	if schema == nil {
		return v, nil
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, &ValidationError{
			Type:    "SchemaError",
			Message: "Failed to resolve JSON schema",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
	}
	v.resolved = resolved
	return v, nil
}

// Validate checks params against the schema
func (v *Validator) Validate(params map[string]interface{}) error {
	if v.resolved == nil {
		return nil
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	if err := v.resolved.Validate(params); err != nil {
		return &ValidationError{
			Type:    "ValidationError",
			Message: "Parameter validation failed",
			Details: map[string]interface{}{
				"error":          err.Error(),
				"providedParams": params,
			},
		}
	}

	return nil
}

// FormatValidationError formats a validation error for display
func FormatValidationError(err error) string {
	if validationErr, ok := err.(*ValidationError); ok {
		if len(validationErr.Details) > 0 {
			if errorMsg, hasError := validationErr.Details["error"].(string); hasError {
				return fmt.Sprintf("%s: %s", validationErr.Message, errorMsg)
			}
		}
		return validationErr.Message
	}
	return err.Error()
}
