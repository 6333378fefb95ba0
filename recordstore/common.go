package recordstore

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrBeginningUnitOfWorkFailed = errors.New("beginning unit of work failed")
var ErrCommittingUnitOfWorkFailed = errors.New("committing unit of work failed")
var ErrUnitOfWorkClosed = errors.New("unit of work is already committed or rolled back")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrQueryingRecordsFailed = errors.New("querying records failed")
var ErrWritingRecordFailed = errors.New("writing record failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")

// ErrUniqueViolation is returned when a write violates a unique constraint.
var ErrUniqueViolation = errors.New("unique constraint violated")

// ErrActiveLoanConflict is returned (joined with ErrUniqueViolation) when a write would create
// a second active loan for the same book.
var ErrActiveLoanConflict = errors.New("book already has an active loan")

// ErrForeignKeyViolation is returned when a write references a record that does not exist,
// or deletes a record that is still referenced.
var ErrForeignKeyViolation = errors.New("foreign key constraint violated")

// ErrCheckViolation is returned when a write violates a check constraint.
var ErrCheckViolation = errors.New("check constraint violated")

// ErrRecordNotFound is returned by Update when the record to update does not exist.
var ErrRecordNotFound = errors.New("record not found")

// ErrSerializationConflict is returned when a unit of work could not be serialized against a
// concurrent one. Callers may retry the whole unit of work.
var ErrSerializationConflict = errors.New("serialization conflict, the unit of work must be retried")

// IsConstraintViolation reports whether err stems from any integrity constraint of the store.
func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrUniqueViolation) ||
		errors.Is(err, ErrForeignKeyViolation) ||
		errors.Is(err, ErrCheckViolation)
}
