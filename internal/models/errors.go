package models

import (
	"errors"
	"fmt"
)

// Generation failures.
var (
	ErrBlockedContent        = errors.New("the request was blocked by the content safety filter")
	ErrGenerationUnavailable = errors.New("the itinerary generator is unavailable")
	ErrEmptyResult           = errors.New("the itinerary generator returned an empty result")
)

// Identity failures.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("no account exists for this email")
	ErrUserDisabled        = errors.New("this account has been disabled")
	ErrUserExists          = errors.New("an account already exists for this email")
	ErrWeakPassword        = errors.New("the password is too weak")
	ErrOAuthExchange       = errors.New("google sign-in failed")
	ErrIdentityUnavailable = errors.New("the identity provider is unavailable")
)

// MissingFieldError reports a required field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// ValidationError reports a field that was present but malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.Reason
	}
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// FieldOf returns the field cited by a validation-class error, or "" when err is
// not one.
func FieldOf(err error) string {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Field
	}
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		return invalid.Field
	}
	return ""
}

// IsValidation reports whether err is a client-side input error.
func IsValidation(err error) bool {
	var missing *MissingFieldError
	var invalid *ValidationError
	return errors.As(err, &missing) || errors.As(err, &invalid) || errors.Is(err, ErrWeakPassword)
}
