package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// EventTypeString represents the type of domain event
type EventTypeString = string

// AggregateTypeString represents the type of aggregate an event belongs to
type AggregateTypeString = string

// Timestamp represents a persisted point in time
type Timestamp = time.Time

// ToTimestamp converts a time to Timestamp with UTC normalization and microsecond precision,
// which is what PostgreSQL keeps.
func ToTimestamp(t time.Time) Timestamp {
	return t.UTC().Truncate(time.Microsecond)
}
