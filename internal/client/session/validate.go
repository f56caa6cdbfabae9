package session

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/ytsummarizer/internal/common"
)

// MinPasswordLength counts characters, not bytes. It applies to sign-in, sign-up and password changes.
const MinPasswordLength = 6

const (
	MsgCredentialsRequired = "Email and password are required"
	MsgPasswordTooShort    = "Password must be at least 6 characters"
	MsgInvalidEmail        = "Please enter a valid email"
	MsgEmailRequired       = "Email is required"

	MsgAllFieldsRequired   = "All fields are required"
	MsgNewPasswordMismatch = "New passwords do not match"
	MsgNewPasswordTooShort = "New password must be at least 6 characters"
)

// ValidationError is returned for input rejected before any call is made.
// Message is user-facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// looksLikeEmail only checks for an "@".
func looksLikeEmail(email string) bool {
	return strings.Contains(email, "@")
}

func validateLogin(email, password string) error {
	if email == "" || password == "" {
		return invalid("credentials", MsgCredentialsRequired)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalid("password", MsgPasswordTooShort)
	}
	return nil
}

func validateSignup(email, password string) error {
	if err := validateLogin(email, password); err != nil {
		return err
	}
	if !looksLikeEmail(email) {
		return invalid("email", MsgInvalidEmail)
	}
	return nil
}

func validateForgot(email string) error {
	if email == "" {
		return invalid("email", MsgEmailRequired)
	}
	if !looksLikeEmail(email) {
		return invalid("email", MsgInvalidEmail)
	}
	return nil
}

func validatePasswordChange(current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return invalid("password", MsgAllFieldsRequired)
	}
	if next != confirm {
		return invalid("confirm", MsgNewPasswordMismatch)
	}
	if utf8.RuneCountInString(next) < MinPasswordLength {
		return invalid("new", MsgNewPasswordTooShort)
	}
	return nil
}
