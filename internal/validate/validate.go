// Package validate holds the field rules for contact data. The same rules
// run on both sides of the wire: the API rejects bad submissions with the
// messages below, and the terminal client shows them next to the form
// field that lost focus.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

// emailPattern requires one '@', no whitespace, and at least one '.' in
// the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phonePattern requires exactly 10 ASCII digits.
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// FieldError names a failing field and its human-readable message. It
// marshals into the errors array of the API envelope.
type FieldError struct {
	Path string `json:"path"`
	Msg  string `json:"msg"`
}

// Name returns an error message for an invalid name, or "".
func Name(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Name is required"
	}
	if len([]rune(trimmed)) < 2 {
		return "Name must be at least 2 characters"
	}
	return ""
}

// Email returns an error message for an invalid email address, or "".
func Email(email string) string {
	if strings.TrimSpace(email) == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return "Please enter a valid email address"
	}
	return ""
}

// Phone returns an error message for an invalid phone number, or "".
// Whitespace inside the number is ignored; what remains must be exactly
// 10 digits.
func Phone(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return "Phone number is required"
	}
	if !phonePattern.MatchString(NormalizePhone(phone)) {
		return "Please enter a valid 10-digit phone number"
	}
	return ""
}

// Message accepts any value; the field is optional.
func Message(string) string {
	return ""
}

// Fields runs all four rules and collects the failures in field order.
// An empty result means the form is valid.
func Fields(name, email, phone, message string) []FieldError {
	var errs []FieldError
	if msg := Name(name); msg != "" {
		errs = append(errs, FieldError{Path: "name", Msg: msg})
	}
	if msg := Email(email); msg != "" {
		errs = append(errs, FieldError{Path: "email", Msg: msg})
	}
	if msg := Phone(phone); msg != "" {
		errs = append(errs, FieldError{Path: "phone", Msg: msg})
	}
	if msg := Message(message); msg != "" {
		errs = append(errs, FieldError{Path: "message", Msg: msg})
	}
	return errs
}

// NormalizeEmail lower-cases an email address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips all whitespace from a phone number.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
}
