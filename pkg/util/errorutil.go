package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors. Code is a stable machine
// identifier, Message the fixed client-facing text; internal detail stays in
// Err and is never rendered to the caller.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "Invalid credentials", http.StatusUnauthorized, nil)
}

func NewInactiveUser() error {
	return NewDomainError("INACTIVE_USER", "User is inactive", http.StatusForbidden, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewInviteNotFound() error {
	return NewDomainError("INVITE_NOT_FOUND", "Invite not found", http.StatusNotFound, nil)
}

func NewInviteAlreadyUsed() error {
	return NewDomainError("INVITE_ALREADY_USED", "Invite already used", http.StatusConflict, nil)
}

func NewInviteExpired() error {
	return NewDomainError("INVITE_EXPIRED", "Invite expired", http.StatusGone, nil)
}

func NewUserAlreadyExists() error {
	return NewDomainError("USER_ALREADY_EXISTS", "User already exists", http.StatusConflict, nil)
}

func NewInvalidRefreshToken() error {
	return NewDomainError("INVALID_REFRESH_TOKEN", "Invalid refresh token", http.StatusUnauthorized, nil)
}

func NewExpiredRefreshToken() error {
	return NewDomainError("EXPIRED_REFRESH_TOKEN", "Refresh token expired", http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Anything unclassified
// renders as an internal error so detail never leaks to the caller.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
