package eventstore

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrEmptyEventsTableName = errors.New("events table name must not be empty")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrQueryingEventsFailed = errors.New("querying events failed")
var ErrAppendingEventFailed = errors.New("appending event failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
var ErrNoEventsSupplied = errors.New("at least one event must be supplied")

// SequenceNumberUint is a type alias for uint64, the position of an event in the log.
type SequenceNumberUint = uint64
