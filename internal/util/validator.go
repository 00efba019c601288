package util

import (
	"errors"
	"regexp"
	"strings"
)

var (
	nameRe   = regexp.MustCompile(`^[a-zA-Z\s.'-]+$`)
	phoneRe  = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	mobileRe = regexp.MustCompile(`^[0-9]{10}$`)
	emailRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// ValidateName accepts 2..100 chars of letters, spaces, dots, hyphens and apostrophes.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return errors.New("name must be at least 2 characters long")
	}
	if len(name) > 100 {
		return errors.New("name must be less than 100 characters")
	}
	if !nameRe.MatchString(name) {
		return errors.New("name contains invalid characters")
	}
	return nil
}

// ValidatePhone accepts 10-15 digits with an optional leading + after
// stripping common separators.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errors.New("phone number is required")
	}
	if !phoneRe.MatchString(NormalizePhone(phone)) {
		return errors.New("invalid phone number format")
	}
	return nil
}

// ValidateMobile accepts exactly 10 digits, no separators, no country code.
func ValidateMobile(mobile string) error {
	if strings.TrimSpace(mobile) == "" {
		return errors.New("mobile number is required")
	}
	if !mobileRe.MatchString(strings.TrimSpace(mobile)) {
		return errors.New("mobile number must be exactly 10 digits")
	}
	return nil
}

// ValidateEmail validates format; empty email is accepted (the field is optional).
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if len(email) > 100 {
		return errors.New("email must be less than 100 characters")
	}
	if !emailRe.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

// RequireString ensures a non-empty value after trimming.
func RequireString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(field + " is required")
	}
	return nil
}

// NormalizePhone strips spaces, hyphens and parentheses.
func NormalizePhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}
