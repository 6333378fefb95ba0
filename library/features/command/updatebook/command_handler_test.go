package updatebook_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/updatebook"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore/memengine"
	. "github.com/AntonStoeckl/library-records-go/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/library-records-go/testutil/testdoubles"
)

func ptr[T any](v T) *T {
	return &v
}

func Test_CommandHandler_Handle_ChangesAuthor(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	publisher := testdoubles.NewRecordingPublisher()
	poe := GivenAuthorWasCreated(t, ctx, engine, "A. Poe")
	shelley := GivenAuthorWasCreated(t, ctx, engine, "M. Shelley")
	book := GivenBookWasCreated(t, ctx, engine, poe.ID, "Tales")
	handler := updatebook.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher})

	// act
	result, err := handler.Handle(ctx, updatebook.BuildCommand(book.ID, nil, nil, nil, ptr(shelley.ID)))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, "Tales", result.Value.Title)
	assert.Equal(t, book.ISBN, result.Value.ISBN)
	require.NotNil(t, result.Value.AuthorName)
	assert.Equal(t, "M. Shelley", *result.Value.AuthorName)
	assert.Equal(t, []string{core.BookUpdatedEventType}, publisher.EventTypes())
}

func Test_CommandHandler_Handle_UnchangedIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	publisher := testdoubles.NewRecordingPublisher()
	author := GivenAuthorWasCreated(t, ctx, engine, "A. Poe")
	book := GivenBookWasCreated(t, ctx, engine, author.ID, "Tales")
	handler := updatebook.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher})

	// act
	result, err := handler.Handle(ctx, updatebook.BuildCommand(book.ID, ptr("Tales"), nil, nil, nil))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	require.NotNil(t, result.Value.AuthorName)
	assert.Equal(t, "A. Poe", *result.Value.AuthorName)
	assert.Empty(t, publisher.Events())
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	author := GivenAuthorWasCreated(t, ctx, engine, "A. Poe")
	book := GivenBookWasCreated(t, ctx, engine, author.ID, "Tales")
	handler := updatebook.NewCommandHandler(shell.Dependencies{Engine: engine})

	// act
	_, unknownBookErr := handler.Handle(ctx, updatebook.BuildCommand(GivenUniqueID(t), ptr("X"), nil, nil, nil))
	_, unknownAuthorErr := handler.Handle(ctx, updatebook.BuildCommand(book.ID, nil, nil, nil, ptr(uuid.New())))
	_, invalidDateErr := handler.Handle(ctx, updatebook.BuildCommand(book.ID, nil, nil, ptr("31-31-2024"), nil))

	// assert
	assert.ErrorIs(t, unknownBookErr, core.ErrBookNotFound)
	assert.ErrorIs(t, unknownAuthorErr, core.ErrAuthorNotFound)
	assert.ErrorIs(t, invalidDateErr, core.ErrInvalidPublishedDate)
}
