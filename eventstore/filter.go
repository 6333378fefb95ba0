package eventstore

import (
	"slices"
	"time"
)

type FilterEventTypeString = string

/***** Filter *****/

// Filter selects events from the log. The zero value matches every event.
type Filter struct {
	eventTypes    []FilterEventTypeString
	aggregateType string
	aggregateID   string
	occurredFrom  time.Time
	occurredUntil time.Time
	afterSequence SequenceNumberUint
	limit         uint
}

func (f Filter) EventTypes() []FilterEventTypeString {
	return f.eventTypes
}

func (f Filter) AggregateType() string {
	return f.aggregateType
}

func (f Filter) AggregateID() string {
	return f.aggregateID
}

// OccurredFrom is inclusive, the zero time means unbounded.
func (f Filter) OccurredFrom() time.Time {
	return f.occurredFrom
}

// OccurredUntil is inclusive, the zero time means unbounded.
func (f Filter) OccurredUntil() time.Time {
	return f.occurredUntil
}

// AfterSequence is exclusive, 0 means from the start of the log.
func (f Filter) AfterSequence() SequenceNumberUint {
	return f.afterSequence
}

// Limit is 0 when the result is unlimited.
func (f Filter) Limit() uint {
	return f.limit
}

// Matches reports whether event satisfies every criterion except the sequence and the limit.
func (f Filter) Matches(event StorableEvent) bool {
	if len(f.eventTypes) > 0 && !slices.Contains(f.eventTypes, event.EventType) {
		return false
	}

	if f.aggregateType != "" && f.aggregateType != event.AggregateType {
		return false
	}

	if f.aggregateID != "" && f.aggregateID != event.AggregateID {
		return false
	}

	if !f.occurredFrom.IsZero() && event.OccurredAt.Before(f.occurredFrom) {
		return false
	}

	if !f.occurredUntil.IsZero() && event.OccurredAt.After(f.occurredUntil) {
		return false
	}

	return true
}

/***** FilterBuilder *****/

// FilterBuilder builds a generic event filter to be used in DB type-specific eventstore implementations to build
// queries for the specific query language. All criteria are combined with AND.
type FilterBuilder interface {
	// OfEventTypes restricts the Filter to ANY of the given EventTypes.
	//
	// It sanitizes the input:
	//	- removing empty EventTypes ("")
	//	- sorting the EventTypes
	//	- removing duplicate EventTypes
	OfEventTypes(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterBuilder

	// ForAggregate restricts the Filter to one aggregate. An empty aggregateID matches all aggregates of the type.
	ForAggregate(aggregateType string, aggregateID string) FilterBuilder

	// OccurredFrom sets the inclusive lower time bound.
	OccurredFrom(from time.Time) FilterBuilder

	// OccurredUntil sets the inclusive upper time bound.
	OccurredUntil(until time.Time) FilterBuilder

	// AfterSequence skips all events up to and including the given sequence number.
	AfterSequence(sequenceNumber SequenceNumberUint) FilterBuilder

	// Limit caps the number of returned events, 0 means unlimited.
	Limit(limit uint) FilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type filterBuilder struct {
	filter Filter
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) OfEventTypes(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterBuilder {
	allEventTypes := append(slices.Clone(fb.filter.eventTypes), eventType)
	allEventTypes = append(allEventTypes, eventTypes...)
	allEventTypes = slices.DeleteFunc(
		allEventTypes,
		func(e FilterEventTypeString) bool {
			return e == ""
		})
	slices.Sort(allEventTypes)
	allEventTypes = slices.Compact(allEventTypes)

	fb.filter.eventTypes = slices.Clip(allEventTypes)

	return fb
}

func (fb filterBuilder) ForAggregate(aggregateType string, aggregateID string) FilterBuilder {
	fb.filter.aggregateType = aggregateType
	fb.filter.aggregateID = aggregateID

	return fb
}

func (fb filterBuilder) OccurredFrom(from time.Time) FilterBuilder {
	fb.filter.occurredFrom = from

	return fb
}

func (fb filterBuilder) OccurredUntil(until time.Time) FilterBuilder {
	fb.filter.occurredUntil = until

	return fb
}

func (fb filterBuilder) AfterSequence(sequenceNumber SequenceNumberUint) FilterBuilder {
	fb.filter.afterSequence = sequenceNumber

	return fb
}

func (fb filterBuilder) Limit(limit uint) FilterBuilder {
	fb.filter.limit = limit

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	return fb.filter
}
