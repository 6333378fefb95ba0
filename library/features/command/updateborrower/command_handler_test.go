package updateborrower_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/updateborrower"
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
	borrower := GivenBorrowerWasCreated(t, ctx, engine, "Jane Reader", "jane@example.com")
	handler := updateborrower.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher})

	// act
	result, err := handler.Handle(ctx, updateborrower.BuildCommand(borrower.ID, nil, nil, ptr("+44 20 7946 0958")))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "+442079460958", result.Value.Phone)
	assert.Equal(t, "Jane Reader", result.Value.Name)
	assert.Equal(t, "jane@example.com", result.Value.Email)
	assert.Equal(t, []string{core.BorrowerUpdatedEventType}, publisher.EventTypes())
}

func Test_CommandHandler_Handle_KeepingOwnEmailIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	publisher := testdoubles.NewRecordingPublisher()
	borrower := GivenBorrowerWasCreated(t, ctx, engine, "Jane Reader", "jane@example.com")
	handler := updateborrower.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher})

	// act
	result, err := handler.Handle(ctx, updateborrower.BuildCommand(borrower.ID, nil, ptr("jane@example.com"), nil))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Empty(t, publisher.Events())
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	jane := GivenBorrowerWasCreated(t, ctx, engine, "Jane Reader", "jane@example.com")
	GivenBorrowerWasCreated(t, ctx, engine, "John Reader", "john@example.com")
	handler := updateborrower.NewCommandHandler(shell.Dependencies{Engine: engine})

	// act
	_, takenErr := handler.Handle(ctx, updateborrower.BuildCommand(jane.ID, nil, ptr("john@example.com"), nil))
	_, phoneErr := handler.Handle(ctx, updateborrower.BuildCommand(jane.ID, nil, nil, ptr("12")))
	_, notFoundErr := handler.Handle(ctx, updateborrower.BuildCommand(GivenUniqueID(t), ptr("X"), nil, nil))

	// assert
	assert.ErrorIs(t, takenErr, core.ErrEmailAlreadyExists)
	assert.ErrorIs(t, phoneErr, core.ErrInvalidPhone)
	assert.ErrorIs(t, notFoundErr, core.ErrBorrowerNotFound)
}
