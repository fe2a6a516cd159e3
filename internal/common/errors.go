// Package common defines shared constants, sentinel errors and the error
// taxonomy used across nutriportal server layers. Callers should use
// errors.Is / errors.As (or KindOf) to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// ErrInvalidCredentials is returned both for unknown accounts and for
	// wrong passwords so that callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
