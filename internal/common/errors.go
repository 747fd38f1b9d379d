// Package common defines shared constants and sentinel errors used across
// the teamspace server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors. Wrapped with a human-readable detail message.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid, malformed, or expired access token).
	ErrInvalidToken = errors.New("invalid token")

	// Unique-constraint violations surfaced distinctly.
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrorAlreadyExists = errors.New("already exists")

	// Membership-specific errors.
	ErrLastAdmin = errors.New("organization must have at least one admin")

	// Document-specific errors.
	ErrInvalidParent       = errors.New("invalid parent document")
	ErrDocumentHasChildren = errors.New("document has sub documents")
)
