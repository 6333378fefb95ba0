package createauthor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/createauthor"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore/memengine"
	"github.com/AntonStoeckl/library-records-go/testutil/testdoubles"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	publisher := testdoubles.NewRecordingPublisher()
	handler := createauthor.NewCommandHandler(shell.Dependencies{Engine: memengine.NewEngine(), Publisher: publisher})
	bio := "American writer"

	// act
	result, err := handler.Handle(context.Background(), createauthor.BuildCommand("  A. Poe ", &bio))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "A. Poe", result.Value.Name)
	assert.Equal(t, &bio, result.Value.Bio)
	assert.NotZero(t, result.Value.ID)
	assert.False(t, result.Value.CreatedAt.IsZero())
	assert.Equal(t, []string{core.AuthorCreatedEventType}, publisher.EventTypes())
	assert.Equal(t, result.Value.ID, publisher.Events()[0].AggregateID)
}

func Test_CommandHandler_Handle_Error_MissingName(t *testing.T) {
	// arrange
	publisher := testdoubles.NewRecordingPublisher()
	handler := createauthor.NewCommandHandler(shell.Dependencies{Engine: memengine.NewEngine(), Publisher: publisher})

	// act
	_, err := handler.Handle(context.Background(), createauthor.BuildCommand("   ", nil))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingName)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Empty(t, publisher.Events())
}
