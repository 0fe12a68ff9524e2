// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"

	"sama/internal/models"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks that the address has a plausible mailbox@domain shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}

	// Only allow alphanumeric, underscores, and hyphens
	if !regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	if username[0] == '_' || username[0] == '-' || username[len(username)-1] == '_' || username[len(username)-1] == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// ValidateRole rejects values outside the enumerated role set.
// An empty value is allowed; the model default applies.
func ValidateRole(role string) error {
	if role == "" {
		return nil
	}
	if !models.ValidRole(role) {
		return fmt.Errorf("role must be one of: student, mentor, admin")
	}
	return nil
}

// ValidateAvailability rejects values outside the enumerated availability set.
// An empty value is allowed; the model default applies.
func ValidateAvailability(availability string) error {
	if availability == "" {
		return nil
	}
	if !models.ValidAvailability(availability) {
		return fmt.Errorf("availability must be one of: available, busy, offline")
	}
	return nil
}
