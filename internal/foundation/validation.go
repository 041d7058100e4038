package foundation

import (
	"fmt"
	"strings"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
)

// Validator represents a validation function.
type Validator[T any] func(T) ValidationResult

// ValidationResult contains the result of a validation operation.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError represents a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: errs,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(field, code, message string) FieldError {
	return FieldError{
		Field:   field,
		Code:    code,
		Message: message,
	}
}

// Check returns Valid when ok holds and a single field error otherwise.
func Check(ok bool, field, code, message string) ValidationResult {
	if ok {
		return Valid()
	}
	return Invalid(NewValidationError(field, code, message))
}

// Combine merges multiple validation results.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	if vr.Valid && other.Valid {
		return Valid()
	}

	allErrors := make([]FieldError, 0, len(vr.Errors)+len(other.Errors))
	allErrors = append(allErrors, vr.Errors...)
	allErrors = append(allErrors, other.Errors...)

	return Invalid(allErrors...)
}

// Prefixed qualifies every field name with prefix ("navbar" + "items[0].href").
func (vr ValidationResult) Prefixed(prefix string) ValidationResult {
	if vr.Valid || prefix == "" {
		return vr
	}
	out := make([]FieldError, len(vr.Errors))
	for i, fe := range vr.Errors {
		switch {
		case fe.Field == "":
			fe.Field = prefix
		case strings.HasPrefix(fe.Field, "["):
			fe.Field = prefix + fe.Field
		default:
			fe.Field = prefix + "." + fe.Field
		}
		out[i] = fe
	}
	return Invalid(out...)
}

// HasField reports whether any error was recorded for field.
func (vr ValidationResult) HasField(field string) bool {
	for _, fe := range vr.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// ToError converts a validation result to a classified error if invalid.
func (vr ValidationResult) ToError() error {
	if vr.Valid {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	fields := make([]string, 0, len(vr.Errors))
	for _, err := range vr.Errors {
		messages = append(messages, err.Error())
		fields = append(fields, err.Field)
	}

	return errors.ValidationError(strings.Join(messages, "; ")).
		WithContext("fields", fields).
		Build()
}

// ValidatorChain allows chaining multiple validators.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain.
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator to the chain.
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain and collects every failure.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()

	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}

	return result
}

// OneOf validates that a value is in a set of allowed values.
func OneOf[T comparable](field string, allowed []T) Validator[T] {
	allowedSet := make(map[T]bool, len(allowed))
	for _, item := range allowed {
		allowedSet[item] = true
	}

	return func(value T) ValidationResult {
		if !allowedSet[value] {
			return Invalid(FieldError{
				Field:   field,
				Code:    "one_of",
				Message: fmt.Sprintf("field must be one of: %v", allowed),
				Value:   value,
			})
		}
		return Valid()
	}
}
