package deleteborrower_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/deleteborrower"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore/memengine"
	. "github.com/AntonStoeckl/library-records-go/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/library-records-go/testutil/testdoubles"
)

func Test_CommandHandler_Handle_GuardedWhileAnyLoanIsActive(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	publisher := testdoubles.NewRecordingPublisher()
	author := GivenAuthorWasCreated(t, ctx, engine, "A. Poe")
	first := GivenBookWasCreated(t, ctx, engine, author.ID, "Tales")
	second := GivenBookWasCreated(t, ctx, engine, author.ID, "Poems")
	borrower := GivenBorrowerWasCreated(t, ctx, engine, "Jane Reader", "jane@example.com")
	returned := GivenLoanWasCreated(t, ctx, engine, first.ID, borrower.ID, time.Now())
	GivenLoanWasReturned(t, ctx, engine, returned, time.Now().Add(time.Hour))
	active := GivenLoanWasCreated(t, ctx, engine, second.ID, borrower.ID, time.Now())
	handler := deleteborrower.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher})

	// act
	_, guardedErr := handler.Handle(ctx, deleteborrower.BuildCommand(borrower.ID))
	GivenLoanWasReturned(t, ctx, engine, active, time.Now().Add(time.Hour))
	result, err := handler.Handle(ctx, deleteborrower.BuildCommand(borrower.ID))

	// assert
	assert.ErrorIs(t, guardedErr, core.ErrActiveLoanExists)
	require.NoError(t, err)
	assert.Equal(t, borrower.ID, result.Value)
	assert.Equal(t, []string{core.BorrowerDeletedEventType}, publisher.EventTypes())
}

func Test_CommandHandler_Handle_Error_BorrowerNotFound(t *testing.T) {
	// arrange
	handler := deleteborrower.NewCommandHandler(shell.Dependencies{Engine: memengine.NewEngine()})

	// act
	_, err := handler.Handle(context.Background(), deleteborrower.BuildCommand(GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, core.ErrBorrowerNotFound)
}
