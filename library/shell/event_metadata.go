package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-records-go/eventstore"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// CorrelationID represents the ID correlating all events of one request.
type CorrelationID = string

// CausationID represents the ID of the message that caused this event.
type CausationID = string

// EventMetadata contains event tracking information.
type EventMetadata struct {
	CorrelationID CorrelationID `json:"correlation_id"`
	CausationID   CausationID   `json:"causation_id"`
}

type correlationIDKey struct{}

// WithCorrelationID stores the correlation id of the current request in ctx.
func WithCorrelationID(ctx context.Context, correlationID CorrelationID) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// CorrelationIDFrom returns the correlation id stored in ctx, or an empty string.
func CorrelationIDFrom(ctx context.Context) CorrelationID {
	if id, ok := ctx.Value(correlationIDKey{}).(CorrelationID); ok {
		return id
	}

	return ""
}

// EventMetadataFromContext builds EventMetadata from the correlation id in ctx.
// Without one, a fresh id is used for both fields.
func EventMetadataFromContext(ctx context.Context) EventMetadata {
	correlationID := CorrelationIDFrom(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	return EventMetadata{CorrelationID: correlationID, CausationID: correlationID}
}

// EventMetadataFrom extracts EventMetadata from a StorableEvent.
func EventMetadataFrom(storableEvent eventstore.StorableEvent) (EventMetadata, error) {
	metadata := new(EventMetadata)

	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
