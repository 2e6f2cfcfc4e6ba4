package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity         = errors.New("invalid quantity")
	ErrInvalidPrice            = errors.New("unit price must not be negative")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrCorruptPersistedProfile = errors.New("persisted profile is corrupt")
	ErrUnauthorized            = errors.New("session token rejected")
	ErrTableNotFound           = errors.New("table not found")
	ErrInvalidStatus           = errors.New("invalid order status")
)

// AuthError reports a failed login. Message is the collaborator's
// human-readable reason, passed through unchanged for display.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return "login failed: " + e.Err.Error()
	}
	return "login failed"
}

func (e *AuthError) Unwrap() error { return e.Err }

// RemoteError is a non-2xx answer from the ordering API.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote api: status %d: %s", e.StatusCode, e.Message)
}
