// Package common defines the sentinel errors shared by the storage, service
// and console layers. Callers should use errors.Is to match these values;
// every layer wraps them with fmt.Errorf("...: %w", err).
package common

import "errors"

var (
	// Validation errors, rejected before any store access.
	ErrInvalidFormat = errors.New("invalid format")
	ErrWeakPassword  = errors.New("password does not meet criteria")

	// Repository-level errors.
	ErrNotFound            = errors.New("not found")
	ErrDuplicateIdentifier = errors.New("identifier already registered")
	ErrStoreUnavailable    = errors.New("store unavailable")

	// Authentication flow errors.
	ErrAuthFailed          = errors.New("authentication failed")
	ErrLockedOut           = errors.New("too many failed attempts")
	ErrSessionClosed       = errors.New("session closed")
	ErrRecoveryUnavailable = errors.New("recovery not available")

	// Recovery flow errors.
	ErrWrongAnswer    = errors.New("incorrect answer to the security question")
	ErrRecoveryClosed = errors.New("recovery flow closed")

	// External collaborator errors.
	ErrQuoteUnavailable = errors.New("quote unavailable")
)
