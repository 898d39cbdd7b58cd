package utils

import "errors"

// Error taxonomy shared by every layer. Wrap with fmt.Errorf("%w: ...") and
// test with errors.Is.
var (
	// ErrValidation marks malformed user input; nothing was mutated.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing hall, movie or booking.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a rejected login or a missing admin flag.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSync marks a failure talking to the remote API.
	ErrSync = errors.New("sync failed")
	// ErrStorageCorrupt marks persisted JSON that could not be parsed.
	ErrStorageCorrupt = errors.New("storage corrupted")
)
