package types

import "fmt"

// ValidationError reports input that failed the pre-transition validation
// contract, e.g. an empty name or description after trimming. It is the
// only error the state engine returns; everything else is a defined no-op.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation failure for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
