package sanitizer

import "strings"

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique index treat case variants as the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TrimSpace trims surrounding whitespace from free-text input.
func TrimSpace(value string) string {
	return strings.TrimSpace(value)
}
