package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionkit/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@x.com", sanitizer.NormalizeEmail("  A@X.CoM "))
	assert.Equal(t, "user@example.com", sanitizer.NormalizeEmail("user@example.com"))
}

func TestTrimSpace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jane Doe", sanitizer.TrimSpace("  Jane Doe\n"))
}
