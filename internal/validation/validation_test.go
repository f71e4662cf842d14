package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateUsername("alice"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("   "))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 151)))
	assert.NoError(t, ValidateUsername(strings.Repeat("a", 150)))
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateEmail(""), "email is optional")
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("a.b+tag@sub.example.co"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("hunter2"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}
