package updateauthor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/updateauthor"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore/memengine"
	. "github.com/AntonStoeckl/library-records-go/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/library-records-go/testutil/testdoubles"
)

func ptr(s string) *string {
	return &s
}

func Test_CommandHandler_Handle_PartialUpdate(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	publisher := testdoubles.NewRecordingPublisher()
	author := GivenAuthorWasCreated(t, ctx, engine, "A. Poe")
	handler := updateauthor.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher})

	// act
	result, err := handler.Handle(ctx, updateauthor.BuildCommand(author.ID, nil, ptr("Poet and critic")))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, "A. Poe", result.Value.Name, "fields that were not provided must not change")
	assert.Equal(t, ptr("Poet and critic"), result.Value.Bio)
	assert.Equal(t, []string{core.AuthorUpdatedEventType}, publisher.EventTypes())
}

func Test_CommandHandler_Handle_UnchangedIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	publisher := testdoubles.NewRecordingPublisher()
	author := GivenAuthorWasCreated(t, ctx, engine, "A. Poe")
	handler := updateauthor.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher})

	// act
	result, err := handler.Handle(ctx, updateauthor.BuildCommand(author.ID, ptr("A. Poe"), nil))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Empty(t, publisher.Events())
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	author := GivenAuthorWasCreated(t, ctx, engine, "A. Poe")
	handler := updateauthor.NewCommandHandler(shell.Dependencies{Engine: engine})

	// act
	_, notFoundErr := handler.Handle(ctx, updateauthor.BuildCommand(GivenUniqueID(t), ptr("X"), nil))
	_, blankErr := handler.Handle(ctx, updateauthor.BuildCommand(author.ID, ptr(" "), nil))

	// assert
	assert.ErrorIs(t, notFoundErr, core.ErrAuthorNotFound)
	assert.ErrorIs(t, blankErr, core.ErrMissingName)
}
