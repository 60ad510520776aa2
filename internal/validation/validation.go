// Package validation holds request level field checks shared by services.
package validation

import (
	"regexp"

	"bankcards/internal/errs"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateUsername checks the username constraints.
func ValidateUsername(username string) error {
	if username == "" {
		return errs.InvalidArgument("Username is required")
	}
	if len(username) > 50 {
		return errs.InvalidArgument("Username must be at most 50 characters")
	}
	return nil
}

// ValidateEmail checks syntax and length.
func ValidateEmail(email string) error {
	if email == "" {
		return errs.InvalidArgument("Email is required")
	}
	if len(email) > 100 {
		return errs.InvalidArgument("Email must be at most 100 characters")
	}
	if !emailPattern.MatchString(email) {
		return errs.InvalidArgument("Email is not valid")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errs.InvalidArgument("Password must be at least 8 characters")
	}
	return nil
}

// ValidateName checks a first or last name field.
func ValidateName(field, value string) error {
	if value == "" {
		return errs.InvalidArgument(field + " is required")
	}
	if len(value) > 50 {
		return errs.InvalidArgument(field + " must be at most 50 characters")
	}
	return nil
}

// ValidateNewUser runs all checks for account creation.
func ValidateNewUser(username, email, password, firstName, lastName string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if err := ValidateName("First name", firstName); err != nil {
		return err
	}
	return ValidateName("Last name", lastName)
}

// ValidateHolderName checks the card holder name constraints.
func ValidateHolderName(name string) error {
	if len(name) < 2 || len(name) > 100 {
		return errs.InvalidArgument("Holder name must be between 2 and 100 characters")
	}
	return nil
}
