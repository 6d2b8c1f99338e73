// Package common defines shared constants and sentinel errors used across
// notekeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorUsernameTaken = errors.New("username already exists")

	// Vault errors. A vault that exists but cannot be read or unwrapped is
	// unavailable; the key is never regenerated in that state because doing
	// so would orphan every store sealed with the old key.
	ErrVaultUnavailable = errors.New("key vault unavailable")

	// Store errors.
	ErrStoreKeyMismatch = errors.New("store was sealed with a different key")
	ErrInvalidToken     = errors.New("invalid token")
)
