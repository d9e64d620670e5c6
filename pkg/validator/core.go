package validator

import (
	"fmt"
	"strings"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any error was recorded for the field.
func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Rule pairs a check with the error to report when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply evaluates all rules and returns the collected failures, or nil when
// every rule passes.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
