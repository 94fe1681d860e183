package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// US phone numbers in common formats: 555-555-5555, (555) 555 5555, +1 555.555.5555
	phoneRegex = regexp.MustCompile(`^(\+1)?[-.\s]?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})$`)
	zipRegex   = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
	digitRegex = regexp.MustCompile(`[^0-9]`)
)

// ValidationError represents a field-level validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// IsValidEmail reports whether an email matches the accepted pattern
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidateName checks if a first or last name is present
func ValidateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// ValidatePhone checks an optional US phone number. Empty input is valid.
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return ValidationError{Field: "phone", Message: "invalid US phone number (e.g., 555-555-5555)"}
	}
	return nil
}

// ValidateZip checks an optional US zip code. Empty input is valid.
func ValidateZip(zip string) error {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return nil
	}
	if !zipRegex.MatchString(zip) {
		return ValidationError{Field: "zipCode", Message: "invalid zip code"}
	}
	return nil
}

// NormalizePhone strips formatting and prefixes the +1 country code.
// The input should already have passed ValidatePhone.
func NormalizePhone(phone string) string {
	digits := digitRegex.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	default:
		return "+" + digits
	}
}
