// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorConflict     = errors.New("conflict")

	// Validation errors: malformed input rejected before any state change.
	ErrorValidation = errors.New("validation error")

	// Timer lifecycle errors.
	ErrNoActiveTimer = fmt.Errorf("%w: no active timer", ErrorNotFound)

	// ErrActiveTimerExists is raised when the storage layer rejects a second
	// active timer for the same user.
	ErrActiveTimerExists = fmt.Errorf("%w: active timer already exists", ErrorConflict)

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
