package createborrower_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/createborrower"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore/memengine"
	"github.com/AntonStoeckl/library-records-go/testutil/testdoubles"
)

func Test_CommandHandler_Handle_NormalizesPhone(t *testing.T) {
	// arrange
	publisher := testdoubles.NewRecordingPublisher()
	handler := createborrower.NewCommandHandler(shell.Dependencies{Engine: memengine.NewEngine(), Publisher: publisher})

	// act
	result, err := handler.Handle(context.Background(), createborrower.BuildCommand("Jane Reader", " jane@example.com ", "+1 (555) 123-4567"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", result.Value.Phone)
	assert.Equal(t, "jane@example.com", result.Value.Email)
	assert.Equal(t, []string{core.BorrowerCreatedEventType}, publisher.EventTypes())
}

func Test_CommandHandler_Handle_Error_EmailAlreadyExists(t *testing.T) {
	// arrange
	ctx := context.Background()
	publisher := testdoubles.NewRecordingPublisher()
	handler := createborrower.NewCommandHandler(shell.Dependencies{Engine: memengine.NewEngine(), Publisher: publisher})

	_, err := handler.Handle(ctx, createborrower.BuildCommand("Jane Reader", "jane@example.com", "+15551234567"))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, createborrower.BuildCommand("Jane Twin", "jane@example.com", "+15557654321"))

	// assert
	assert.ErrorIs(t, err, core.ErrEmailAlreadyExists)
	assert.Equal(t, 1, publisher.CountOf(core.BorrowerCreatedEventType))
}

func Test_CommandHandler_Handle_ValidationErrors(t *testing.T) {
	testCases := []struct {
		description string
		command     createborrower.Command
		expectedErr error
	}{
		{"blank name", createborrower.BuildCommand("", "jane@example.com", "+15551234567"), core.ErrMissingName},
		{"invalid email", createborrower.BuildCommand("Jane", "jane-at-example", "+15551234567"), core.ErrInvalidEmail},
		{"phone without country code", createborrower.BuildCommand("Jane", "jane@example.com", "555 123"), core.ErrInvalidPhone},
		{"phone with leading zero", createborrower.BuildCommand("Jane", "jane@example.com", "+0 555 123"), core.ErrInvalidPhone},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			handler := createborrower.NewCommandHandler(shell.Dependencies{Engine: memengine.NewEngine()})

			// act
			_, err := handler.Handle(context.Background(), tc.command)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.ErrorIs(t, err, core.ErrValidation)
		})
	}
}
