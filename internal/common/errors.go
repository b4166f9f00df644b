// Package common defines shared constants and sentinel errors used across
// client and server layers of FlowDeck. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")

	// Registration errors.
	ErrUsernameTaken = errors.New("username already taken")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Client-side: a protected command was invoked without a valid session.
	ErrLoginRequired = errors.New("login required")
)
