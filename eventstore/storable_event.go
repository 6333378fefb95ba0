package eventstore

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")
var ErrMissingEventID = errors.New("event id must not be empty")
var ErrMissingEventType = errors.New("event type must not be empty")

// StorableEvents is an alias type for a slice of StorableEvent
type StorableEvents = []StorableEvent

// StorableEvent is a DTO (data transfer object) used to append events to the log.
//
// It is built on scalars to be completely agnostic of the implementation of Domain Events in the client code.
//
// While its properties are exported, it should only be constructed with the supplied factory methods:
//   - BuildStorableEvent
//   - BuildStorableEventWithEmptyMetadata
type StorableEvent struct {
	EventID       uuid.UUID
	EventType     string
	AggregateType string
	AggregateID   string
	OccurredAt    time.Time
	PayloadJSON   []byte
	MetadataJSON  []byte
}

// StoredEvents is an alias type for a slice of StoredEvent
type StoredEvents = []StoredEvent

// StoredEvent is a StorableEvent read back from the log, together with its sequence number.
type StoredEvent struct {
	StorableEvent
	SequenceNumber SequenceNumberUint
}

// BuildStorableEvent is a factory method for StorableEvent.
//
// Returns an error if eventID or eventType are empty, or if payloadJSON or metadataJSON are not valid JSON.
func BuildStorableEvent(
	eventID uuid.UUID,
	eventType string,
	aggregateType string,
	aggregateID string,
	occurredAt time.Time,
	payloadJSON []byte,
	metadataJSON []byte,
) (StorableEvent, error) {

	if eventID == uuid.Nil {
		return StorableEvent{}, ErrMissingEventID
	}

	if eventType == "" {
		return StorableEvent{}, ErrMissingEventType
	}

	if !jsoniter.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.Valid(metadataJSON) {
		return StorableEvent{}, ErrInvalidMetadataJSON
	}

	return StorableEvent{
		EventID:       eventID,
		EventType:     eventType,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		OccurredAt:    occurredAt.UTC(),
		PayloadJSON:   payloadJSON,
		MetadataJSON:  metadataJSON,
	}, nil
}

// BuildStorableEventWithEmptyMetadata is a factory method for StorableEvent.
//
// It creates valid empty JSON for MetadataJSON.
func BuildStorableEventWithEmptyMetadata(
	eventID uuid.UUID,
	eventType string,
	aggregateType string,
	aggregateID string,
	occurredAt time.Time,
	payloadJSON []byte,
) (StorableEvent, error) {

	return BuildStorableEvent(eventID, eventType, aggregateType, aggregateID, occurredAt, payloadJSON, []byte("{}"))
}
