// Package common defines shared constants and sentinel errors used across
// the storage, service and CLI layers of GoMate. Callers should use
// errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrStorageFailure wraps every failure of the underlying key-value
	// store, so callers can tell "nothing stored" from "read failed".
	ErrStorageFailure = errors.New("storage failure")

	// Account errors.
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// ErrInvalidLogin is the generic authentication failure shown to the
	// user. Both ErrAccountNotFound and ErrInvalidCredentials match it.
	ErrInvalidLogin       = errors.New("invalid email or password")
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", ErrInvalidLogin)
	ErrInvalidCredentials = fmt.Errorf("%w: password mismatch", ErrInvalidLogin)

	// Catalog errors.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
