//go:build integration

package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/eventstore"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/createloan"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	. "github.com/AntonStoeckl/library-records-go/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/library-records-go/testutil/helper/postgreswrapper"
)

func inUnitOfWork(t *testing.T, ctx context.Context, engine recordstore.Engine, work func(session recordstore.Session) error) error {
	t.Helper()

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(ctx) }()

	if err = work(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func Test_Integration_SecondActiveLoanForBook_IsRejected(t *testing.T) {
	// arrange
	ctx := context.Background()
	pg := postgreswrapper.StartPostgres(t)
	author := GivenAuthorWasCreated(t, ctx, pg.Engine, "A. Poe")
	book := GivenBookWasCreated(t, ctx, pg.Engine, author.ID, "Tales")
	first := GivenBorrowerWasCreated(t, ctx, pg.Engine, "Jane Reader", "jane@example.com")
	second := GivenBorrowerWasCreated(t, ctx, pg.Engine, "John Reader", "john@example.com")
	GivenLoanWasCreated(t, ctx, pg.Engine, book.ID, first.ID, time.Now())

	// act
	err := inUnitOfWork(t, ctx, pg.Engine, func(session recordstore.Session) error {
		_, createErr := session.Loans().Create(ctx, recordstore.LoanRecord{
			BookID:     book.ID,
			BorrowerID: second.ID,
			LoanDate:   time.Now().UTC(),
		})

		return createErr
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrActiveLoanConflict)
}

func Test_Integration_ReturnedLoan_AllowsNewLoan(t *testing.T) {
	// arrange
	ctx := context.Background()
	pg := postgreswrapper.StartPostgres(t)
	author := GivenAuthorWasCreated(t, ctx, pg.Engine, "A. Poe")
	book := GivenBookWasCreated(t, ctx, pg.Engine, author.ID, "Tales")
	borrower := GivenBorrowerWasCreated(t, ctx, pg.Engine, "Jane Reader", "jane@example.com")
	loan := GivenLoanWasCreated(t, ctx, pg.Engine, book.ID, borrower.ID, time.Now().Add(-time.Hour))
	GivenLoanWasReturned(t, ctx, pg.Engine, loan, time.Now())

	// act
	again := GivenLoanWasCreated(t, ctx, pg.Engine, book.ID, borrower.ID, time.Now())

	// assert
	assert.True(t, again.IsActive())
}

func Test_Integration_DuplicateBorrowerEmail_IsRejected(t *testing.T) {
	// arrange
	ctx := context.Background()
	pg := postgreswrapper.StartPostgres(t)
	GivenBorrowerWasCreated(t, ctx, pg.Engine, "Jane Reader", "jane@example.com")

	// act
	err := inUnitOfWork(t, ctx, pg.Engine, func(session recordstore.Session) error {
		_, createErr := session.Borrowers().Create(ctx, recordstore.BorrowerRecord{
			Name:  "Jane Again",
			Email: "jane@example.com",
			Phone: "+15557654321",
		})

		return createErr
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrUniqueViolation)
}

func Test_Integration_DeleteAuthorWithBooks_IsRestricted(t *testing.T) {
	// arrange
	ctx := context.Background()
	pg := postgreswrapper.StartPostgres(t)
	author := GivenAuthorWasCreated(t, ctx, pg.Engine, "A. Poe")
	GivenBookWasCreated(t, ctx, pg.Engine, author.ID, "Tales")

	// act
	err := inUnitOfWork(t, ctx, pg.Engine, func(session recordstore.Session) error {
		return session.Authors().Delete(ctx, author.ID)
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrForeignKeyViolation)
}

func Test_Integration_DeleteBook_CascadesToLoans(t *testing.T) {
	// arrange
	ctx := context.Background()
	pg := postgreswrapper.StartPostgres(t)
	author := GivenAuthorWasCreated(t, ctx, pg.Engine, "A. Poe")
	book := GivenBookWasCreated(t, ctx, pg.Engine, author.ID, "Tales")
	borrower := GivenBorrowerWasCreated(t, ctx, pg.Engine, "Jane Reader", "jane@example.com")
	loan := GivenLoanWasCreated(t, ctx, pg.Engine, book.ID, borrower.ID, time.Now().Add(-time.Hour))
	GivenLoanWasReturned(t, ctx, pg.Engine, loan, time.Now())

	// act
	err := inUnitOfWork(t, ctx, pg.Engine, func(session recordstore.Session) error {
		return session.Books().Delete(ctx, book.ID)
	})

	// assert
	require.NoError(t, err)
	history, err := shell.ReadInUnitOfWork(ctx, pg.Engine,
		func(ctx context.Context, session recordstore.Session) ([]recordstore.LoanRecord, error) {
			return session.Loans().ListByBorrower(ctx, borrower.ID)
		})
	require.NoError(t, err)
	assert.Empty(t, history)
}

func Test_Integration_CreateLoan_AppendsEventToEventLog(t *testing.T) {
	// arrange
	ctx := context.Background()
	pg := postgreswrapper.StartPostgres(t)
	author := GivenAuthorWasCreated(t, ctx, pg.Engine, "A. Poe")
	book := GivenBookWasCreated(t, ctx, pg.Engine, author.ID, "Tales")
	borrower := GivenBorrowerWasCreated(t, ctx, pg.Engine, "Jane Reader", "jane@example.com")

	emitter, err := shell.NewEmitter(shell.NewEventStoreSink(pg.EventStore))
	require.NoError(t, err)

	handler := createloan.NewCommandHandler(shell.Dependencies{Engine: pg.Engine, Publisher: emitter})

	// act
	result, err := handler.Handle(ctx, createloan.BuildCommand(book.ID, borrower.ID, "", ""))
	require.NoError(t, err)
	require.NoError(t, emitter.Close(ctx))

	// assert
	filter := eventstore.BuildEventFilter().
		OfEventTypes(core.LoanCreatedEventType).
		ForAggregate(core.LoanAggregateType, result.Value.ID.String()).
		Finalize()

	events, err := pg.EventStore.Query(ctx, filter)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, core.LoanCreatedEventType, events[0].EventType)
}
