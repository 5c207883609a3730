package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "Name is required", Name(""))
	assert.Equal(t, "Name is required", Name("   "))
	assert.Equal(t, "Name must be at least 2 characters", Name("J"))
	assert.Equal(t, "Name must be at least 2 characters", Name(" J "))
	assert.Equal(t, "", Name("Jo"))
	assert.Equal(t, "", Name("Jo Lin"))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "Email is required", Email(""))
	assert.Equal(t, "Email is required", Email("  "))
	invalid := []string{
		"plainaddress",
		"missing@dot",
		"two@@ex.com",
		"spaces in@ex.com",
		"@ex.com",
		"jo@",
	}
	for _, email := range invalid {
		assert.Equal(t, "Please enter a valid email address", Email(email), "email: "+email)
	}
	assert.Equal(t, "", Email("jo@ex.com"))
	assert.Equal(t, "", Email("JO@EX.com"))
	assert.Equal(t, "", Email("first.last@sub.example.co"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "Phone number is required", Phone(""))
	assert.Equal(t, "Phone number is required", Phone("   "))
	assert.Equal(t, "Please enter a valid 10-digit phone number", Phone("12345"))
	assert.Equal(t, "Please enter a valid 10-digit phone number", Phone("12345678901"))
	assert.Equal(t, "Please enter a valid 10-digit phone number", Phone("123456789a"))
	assert.Equal(t, "", Phone("5551234567"))
	// Internal whitespace is stripped before the digit check.
	assert.Equal(t, "", Phone("555 123 4567"))
	assert.Equal(t, "", Phone(" 555 123 4567 "))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(""))
	assert.Equal(t, "", Message("any text at all"))
}

func TestFields(t *testing.T) {
	assert.Empty(t, Fields("Jo Lin", "jo@ex.com", "5551234567", ""))

	errs := Fields("", "not-an-email", "123", "hello")
	assert.Len(t, errs, 3)
	assert.Equal(t, FieldError{Path: "name", Msg: "Name is required"}, errs[0])
	assert.Equal(t, FieldError{Path: "email", Msg: "Please enter a valid email address"}, errs[1])
	assert.Equal(t, FieldError{Path: "phone", Msg: "Please enter a valid 10-digit phone number"}, errs[2])
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jo@ex.com", NormalizeEmail("JO@EX.com"))
	assert.Equal(t, "jo@ex.com", NormalizeEmail("  jo@ex.com  "))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("555 123 4567"))
	assert.Equal(t, "5551234567", NormalizePhone("5551234567"))
	assert.Equal(t, "5551234567", NormalizePhone("555\t123 4567"))
}
