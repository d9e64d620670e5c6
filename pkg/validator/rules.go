package validator

import (
	"fmt"
	"net/mail"
	"strings"
)

// Required fails on empty or whitespace-only values.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "is required",
		},
	}
}

// ValidEmail checks the value parses as a bare RFC 5322 address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}

			// Reject display-name forms like "Name <a@b.c>".
			return addr.Address == value
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// MinLen checks the value is at least min bytes long.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}
