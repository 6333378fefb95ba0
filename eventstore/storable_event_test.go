package eventstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildStorableEvent_ErrorCases(t *testing.T) {
	validID := uuid.New()
	validTime := time.Now()
	validPayloadJSON := []byte(`{"key": "value"}`)
	validMetadataJSON := []byte(`{"meta": "data"}`)

	tests := []struct {
		name         string
		eventID      uuid.UUID
		eventType    string
		payloadJSON  []byte
		metadataJSON []byte
		expectedErr  error
	}{
		{
			name:         "missing event id",
			eventID:      uuid.Nil,
			eventType:    "loan.created",
			payloadJSON:  validPayloadJSON,
			metadataJSON: validMetadataJSON,
			expectedErr:  ErrMissingEventID,
		},
		{
			name:         "missing event type",
			eventID:      validID,
			payloadJSON:  validPayloadJSON,
			metadataJSON: validMetadataJSON,
			expectedErr:  ErrMissingEventType,
		},
		{
			name:         "invalid payload JSON",
			eventID:      validID,
			eventType:    "loan.created",
			payloadJSON:  []byte(`{"invalid": json}`),
			metadataJSON: validMetadataJSON,
			expectedErr:  ErrInvalidPayloadJSON,
		},
		{
			name:         "nil payload JSON",
			eventID:      validID,
			eventType:    "loan.created",
			payloadJSON:  nil,
			metadataJSON: validMetadataJSON,
			expectedErr:  ErrInvalidPayloadJSON,
		},
		{
			name:         "invalid metadata JSON",
			eventID:      validID,
			eventType:    "loan.created",
			payloadJSON:  validPayloadJSON,
			metadataJSON: []byte(`{"invalid": json}`),
			expectedErr:  ErrInvalidMetadataJSON,
		},
		{
			name:         "empty metadata JSON",
			eventID:      validID,
			eventType:    "loan.created",
			payloadJSON:  validPayloadJSON,
			metadataJSON: []byte(``),
			expectedErr:  ErrInvalidMetadataJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildStorableEvent(tt.eventID, tt.eventType, "loan", "l-1", validTime, tt.payloadJSON, tt.metadataJSON)

			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	// arrange
	eventID := uuid.New()
	occurredAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	// act
	event, err := BuildStorableEventWithEmptyMetadata(eventID, "book.created", "book", "b-1", occurredAt, []byte(`{"title":"Tales"}`))

	// assert
	require.NoError(t, err)
	assert.Equal(t, eventID, event.EventID)
	assert.Equal(t, "book", event.AggregateType)
	assert.Equal(t, []byte("{}"), event.MetadataJSON)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.True(t, occurredAt.Equal(event.OccurredAt))
}
