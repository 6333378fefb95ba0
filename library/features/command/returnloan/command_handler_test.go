package returnloan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/memengine"
	. "github.com/AntonStoeckl/library-records-go/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/library-records-go/testutil/testdoubles"
)

func setupActiveLoan(t *testing.T) (context.Context, *memengine.Engine, recordstore.LoanRecord) {
	t.Helper()

	ctx := context.Background()
	engine := memengine.NewEngine()

	author := GivenAuthorWasCreated(t, ctx, engine, "A. Poe")
	book := GivenBookWasCreated(t, ctx, engine, author.ID, "Tales")
	borrower := GivenBorrowerWasCreated(t, ctx, engine, "Jane Reader", "jane@example.com")
	loan := GivenLoanWasCreated(t, ctx, engine, book.ID, borrower.ID, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))

	return ctx, engine, loan
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx, engine, loan := setupActiveLoan(t)
	publisher := testdoubles.NewRecordingPublisher()
	clock := NewFakeClock(time.Date(2024, time.January, 17, 9, 30, 0, 0, time.UTC))
	handler := returnloan.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher, Clock: clock.Now})

	// act
	result, err := handler.Handle(ctx, returnloan.BuildCommand(loan.ID))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	require.NotNil(t, result.Value.ReturnDate)
	assert.Equal(t, clock.Now(), *result.Value.ReturnDate)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, core.LoanReturnedEventType, events[0].EventType)
	assert.Equal(t, loan.ID, events[0].AggregateID)
	assert.Equal(t, result.Value, events[0].Data)
}

func Test_CommandHandler_Handle_ReturningTwiceIsIdempotent(t *testing.T) {
	// arrange
	ctx, engine, loan := setupActiveLoan(t)
	publisher := testdoubles.NewRecordingPublisher()
	clock := NewFakeClock(time.Date(2024, time.January, 17, 9, 30, 0, 0, time.UTC))
	handler := returnloan.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher, Clock: clock.Now})

	first, err := handler.Handle(ctx, returnloan.BuildCommand(loan.ID))
	require.NoError(t, err)
	clock.Advance(24 * time.Hour)

	// act
	second, err := handler.Handle(ctx, returnloan.BuildCommand(loan.ID))

	// assert
	require.NoError(t, err)
	assert.True(t, second.Idempotent)
	assert.Equal(t, first.Value, second.Value, "the second return must not touch the record")
	assert.Equal(t, 1, publisher.CountOf(core.LoanReturnedEventType))
}

func Test_CommandHandler_Handle_Error_LoanNotFound(t *testing.T) {
	// arrange
	ctx, engine, _ := setupActiveLoan(t)
	publisher := testdoubles.NewRecordingPublisher()
	handler := returnloan.NewCommandHandler(shell.Dependencies{Engine: engine, Publisher: publisher})

	// act
	_, err := handler.Handle(ctx, returnloan.BuildCommand(GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, core.ErrLoanNotFound)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, publisher.Events())
}
