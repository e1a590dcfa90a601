package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation is not valid for the current state
// of the aggregate (e.g. checking out a document that is already checked out).
var ErrConflict = errors.New("state conflict")

// ErrUnauthorized indicates that the acting user is not permitted to perform
// the operation (e.g. checking in a document held by another user).
var ErrUnauthorized = errors.New("operation not permitted for this user")

// ErrSequencing indicates that a supplied revision number does not match the
// next number computed from the document's existing revisions.
var ErrSequencing = errors.New("sequencing error")

// ErrVersionConflict indicates an optimistic-concurrency failure: the aggregate
// was modified between load and save. Callers may re-load and retry.
var ErrVersionConflict = fmt.Errorf("%w: aggregate version mismatch", ErrConflict)

// ErrInternal indicates an unexpected infrastructure or programming error.
var ErrInternal = errors.New("internal error")

// Code maps an error to a stable, machine-readable code so callers can
// translate outcomes into whatever presentation they need. The human-readable
// detail stays in the error message.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrVersionConflict):
		return "VERSION_CONFLICT"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrSequencing):
		return "SEQUENCING"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrInternal):
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}
