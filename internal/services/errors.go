package services

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by services. Handlers map them to HTTP statuses;
// the wrapped message is the client-facing explanation.
var (
	// ErrValidation marks bad input: missing fields, duplicate ids within a
	// set, references to non-existent ids, out-of-range values.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks duplicate adds of an existing relationship and
	// self-referential subscribes, including unique-constraint violations
	// arriving from concurrent requests.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an authenticated actor mutating an object they do
	// not own.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized marks failed credential or token checks.
	ErrUnauthorized = errors.New("unauthorized")
)

// translateDBError folds storage-layer errors into the service taxonomy.
// GORM's TranslateError turns driver-specific unique violations into
// gorm.ErrDuplicatedKey, so a concurrent duplicate add surfaces as the same
// conflict as the pre-checked one.
func translateDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
