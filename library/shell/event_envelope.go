package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-records-go/eventstore"
	"github.com/AntonStoeckl/library-records-go/library/core"
)

// ErrMappingToStorableEventFailed is returned when a domain event cannot be serialized.
var ErrMappingToStorableEventFailed = errors.New("mapping domain event to storable event failed")

// EventEnvelope is a domain event together with its metadata, the unit handed to every sink.
type EventEnvelope struct {
	Event    core.DomainEvent
	Metadata EventMetadata
}

// StorableEventFrom converts an EventEnvelope into an eventstore.StorableEvent.
func StorableEventFrom(envelope EventEnvelope) (eventstore.StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(envelope.Event.Data)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	metadataJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(envelope.Metadata)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	storableEvent, err := eventstore.BuildStorableEvent(
		envelope.Event.EventID,
		envelope.Event.EventType,
		envelope.Event.AggregateType,
		envelope.Event.AggregateID.String(),
		envelope.Event.OccurredAt,
		payloadJSON,
		metadataJSON,
	)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	return storableEvent, nil
}

// EventRecordJSON serializes the event record {event_id, event_type, occurred_at, aggregate_type,
// aggregate_id, data} as published to external sinks.
func EventRecordJSON(event core.DomainEvent) ([]byte, error) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return nil, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	return data, nil
}
