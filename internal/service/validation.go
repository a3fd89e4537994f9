package service

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtroode/studypartner-auth/internal/apperror"
)

const (
	maxEmailLength       = 254
	minPasswordLength    = 8
	maxPasswordBytes     = 72
	minRoleNameLength    = 2
	maxRoleNameLength    = 50
	maxDescriptionLength = 255
)

var roleNamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// NormalizeEmail trims and lower-cases an address after checking that it
// is a bare addr-spec.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", apperror.Validation("email is required")
	}
	if len(email) > maxEmailLength {
		return "", apperror.Validation("email is too long")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", apperror.Validation("email is invalid")
	}

	return email, nil
}

// ValidatePassword enforces the password policy.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperror.Validation("password must be at least 8 characters")
	}
	if len(password) > maxPasswordBytes {
		return apperror.Validation("password must be at most 72 bytes")
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return apperror.Validation("password must contain uppercase, lowercase and number")
	}

	return nil
}

// ValidateRoleName returns the normalized role name.
func ValidateRoleName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if len(name) < minRoleNameLength || len(name) > maxRoleNameLength {
		return "", apperror.Validation("role name must be between 2 and 50 characters")
	}
	if !roleNamePattern.MatchString(name) {
		return "", apperror.Validation("role name may contain only lowercase letters, digits, '-' and '_'")
	}
	return name, nil
}

func validateRoleDescription(description string) error {
	if len([]rune(description)) > maxDescriptionLength {
		return apperror.Validation("role description must be at most 255 characters")
	}
	return nil
}
