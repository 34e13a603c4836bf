// Package errs contains sentinel errors shared across layers so handlers can
// map failures to stable HTTP responses.
package errs

import "errors"

var (
	// ErrNotFound indicates the referenced user, peer or document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a missing or malformed field in a request payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicate indicates a unique constraint violation (email taken,
	// profile already bookmarked).
	ErrDuplicate = errors.New("already exists")
)
