// Package validation checks user-supplied credentials against account policy.
package validation

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLen = 8
	minUsernameLen = 3

	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

// Validation errors returned to clients verbatim.
var (
	ErrWeakPassword     = errors.New("password must be at least 8 characters and contain 1 number and 1 uppercase letter")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooShort = errors.New("username must be 3+ chars")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
)

// IsValidPassword reports whether p has at least 8 characters, a digit and an
// uppercase letter, and fits in MaxPasswordBytes.
func IsValidPassword(p string) bool {
	if utf8.RuneCountInString(p) < minPasswordLen || len(p) > MaxPasswordBytes {
		return false
	}
	var hasDigit, hasUpper bool
	for _, r := range p {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	return hasDigit && hasUpper
}

// ValidatePassword returns ErrWeakPassword when p fails the password policy
// and ErrPasswordTooLong when p cannot be hashed.
func ValidatePassword(p string) error {
	if len(p) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	if !IsValidPassword(p) {
		return ErrWeakPassword
	}
	return nil
}

// ValidateUsername checks presence and minimum length.
func ValidateUsername(u string) error {
	u = strings.TrimSpace(u)
	if u == "" {
		return ErrUsernameRequired
	}
	if utf8.RuneCountInString(u) < minUsernameLen {
		return ErrUsernameTooShort
	}
	return nil
}
