// Package validator provides input validation functions
package validator

import (
	"fmt"
	"strconv"
	"strings"

	"git.sr.ht/~avern/wpcraft/constants"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%s': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, message string) error {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ValidateResolution checks a WIDTHxHEIGHT resolution string.
func ValidateResolution(value string) error {
	w, h, ok := strings.Cut(value, "x")
	if !ok {
		return NewValidationError("resolution", value, "must be WIDTHxHEIGHT")
	}
	for _, part := range []string{w, h} {
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return NewValidationError("resolution", value, "dimensions must be positive integers")
		}
	}
	return nil
}

// ValidateMinScore checks a minimum score threshold. Zero clears the
// threshold.
func ValidateMinScore(value float64) error {
	if value < 0 {
		return NewValidationError("min_score", fmt.Sprintf("%g", value), "must not be negative")
	}
	return nil
}

// ValidateUnit checks an auto switch interval unit.
func ValidateUnit(value string) error {
	for _, valid := range constants.ValidUnits {
		if value == valid {
			return nil
		}
	}
	return NewValidationError("unit", value, "must be one of: "+strings.Join(constants.ValidUnits, ", "))
}

// ValidateInterval checks an auto switch interval count.
func ValidateInterval(value int) error {
	if value < 1 {
		return NewValidationError("interval", strconv.Itoa(value), "must be at least 1")
	}
	return nil
}
