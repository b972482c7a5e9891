package domain

import "errors"

// Sentinel errors shared by services and handlers. Services wrap these with
// context via fmt.Errorf("...: %w", err); handlers match with errors.Is to
// pick the HTTP status.
var (
	// ErrNotFound covers both "does not exist" and "exists but is not
	// visible to the caller". The two cases must stay indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the entity loaded but the caller may not delete it.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is a uniqueness violation surfaced by the database
	// (duplicate email, username or recipe name).
	ErrConflict = errors.New("already exists")

	// ErrValidation is a field-level constraint violation.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated means the credential is missing, invalid or
	// expired and could not be refreshed.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrMalformed is a missing required top-level field (e.g. empty
	// login credentials).
	ErrMalformed = errors.New("malformed request")
)
