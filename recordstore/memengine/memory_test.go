package memengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/memengine"
)

var fakeClock = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	author   recordstore.AuthorRecord
	book     recordstore.BookRecord
	borrower recordstore.BorrowerRecord
}

func seed(t *testing.T, engine *memengine.Engine) fixture {
	t.Helper()
	ctx := context.Background()

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	author, err := uow.Authors().Create(ctx, recordstore.AuthorRecord{Name: "A. Poe"})
	require.NoError(t, err)

	book, err := uow.Books().Create(ctx, recordstore.BookRecord{
		Title:         "Tales",
		ISBN:          "978-0-00-000000-0",
		PublishedDate: time.Date(1845, 6, 1, 0, 0, 0, 0, time.UTC),
		AuthorID:      author.ID,
	})
	require.NoError(t, err)

	borrower, err := uow.Borrowers().Create(ctx, recordstore.BorrowerRecord{Name: "B", Email: "b@example.com", Phone: "+15551234567"})
	require.NoError(t, err)

	require.NoError(t, uow.Commit(ctx))

	return fixture{author: author, book: book, borrower: borrower}
}

func Test_Create_AssignsIDAndTimestamps(t *testing.T) {
	// arrange
	engine := memengine.NewEngine(memengine.WithClock(func() time.Time { return fakeClock }))

	// act
	f := seed(t, engine)

	// assert
	assert.NotEqual(t, uuid.Nil, f.author.ID)
	assert.Equal(t, fakeClock, f.author.CreatedAt)
	assert.Equal(t, fakeClock, f.book.UpdatedAt)
}

func Test_GetByID_MissingRecord(t *testing.T) {
	ctx := context.Background()
	engine := memengine.NewEngine()

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(ctx) }()

	_, found, err := uow.Loans().GetByID(ctx, uuid.New())

	assert.NoError(t, err)
	assert.False(t, found)
}

func Test_LoanStore_AtMostOneActiveLoanPerBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	f := seed(t, engine)

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(ctx) }()

	first, err := uow.Loans().Create(ctx, recordstore.LoanRecord{BookID: f.book.ID, BorrowerID: f.borrower.ID, LoanDate: fakeClock})
	require.NoError(t, err)

	// act
	_, err = uow.Loans().Create(ctx, recordstore.LoanRecord{BookID: f.book.ID, BorrowerID: f.borrower.ID, LoanDate: fakeClock})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrActiveLoanConflict)
	assert.ErrorIs(t, err, recordstore.ErrUniqueViolation)

	returned := fakeClock.Add(time.Hour)
	first.ReturnDate = &returned
	_, err = uow.Loans().Update(ctx, first)
	require.NoError(t, err)

	_, err = uow.Loans().Create(ctx, recordstore.LoanRecord{BookID: f.book.ID, BorrowerID: f.borrower.ID, LoanDate: returned})
	assert.NoError(t, err, "a returned loan frees the book")

	hasActive, err := uow.Loans().HasActiveForBook(ctx, f.book.ID)
	assert.NoError(t, err)
	assert.True(t, hasActive)
}

func Test_LoanStore_RejectsReturnBeforeLoan(t *testing.T) {
	ctx := context.Background()
	engine := memengine.NewEngine()
	f := seed(t, engine)

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(ctx) }()

	returned := fakeClock.Add(-time.Hour)
	_, err = uow.Loans().Create(ctx, recordstore.LoanRecord{BookID: f.book.ID, BorrowerID: f.borrower.ID, LoanDate: fakeClock, ReturnDate: &returned})

	assert.ErrorIs(t, err, recordstore.ErrCheckViolation)
}

func Test_BorrowerStore_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	engine := memengine.NewEngine()
	f := seed(t, engine)

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(ctx) }()

	_, err = uow.Borrowers().Create(ctx, recordstore.BorrowerRecord{Name: "C", Email: f.borrower.Email, Phone: "+15550000000"})
	assert.ErrorIs(t, err, recordstore.ErrUniqueViolation)

	f.borrower.Name = "B. Renamed"
	_, err = uow.Borrowers().Update(ctx, f.borrower)
	assert.NoError(t, err, "keeping the own email is fine")
}

func Test_BookStore_RequiresExistingAuthor(t *testing.T) {
	ctx := context.Background()
	engine := memengine.NewEngine()

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(ctx) }()

	_, err = uow.Books().Create(ctx, recordstore.BookRecord{Title: "Orphan", AuthorID: uuid.New()})

	assert.ErrorIs(t, err, recordstore.ErrForeignKeyViolation)
}

func Test_AuthorStore_Delete_RestrictedByBooks(t *testing.T) {
	ctx := context.Background()
	engine := memengine.NewEngine()
	f := seed(t, engine)

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(ctx) }()

	assert.ErrorIs(t, uow.Authors().Delete(ctx, f.author.ID), recordstore.ErrForeignKeyViolation)
	assert.NoError(t, uow.Authors().Delete(ctx, uuid.New()), "deleting a missing record is a no-op")
}

func Test_BookStore_Delete_CascadesToLoans(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	f := seed(t, engine)

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(ctx) }()

	_, err = uow.Loans().Create(ctx, recordstore.LoanRecord{BookID: f.book.ID, BorrowerID: f.borrower.ID, LoanDate: fakeClock})
	require.NoError(t, err)

	// act
	err = uow.Books().Delete(ctx, f.book.ID)

	// assert
	assert.NoError(t, err)
	history, err := uow.Loans().ListByBorrower(ctx, f.borrower.ID)
	assert.NoError(t, err)
	assert.Empty(t, history)
}

func Test_UnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	engine := memengine.NewEngine()

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	_, err = uow.Authors().Create(ctx, recordstore.AuthorRecord{Name: "Ghost"})
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(ctx))

	check, err := engine.Begin(ctx)
	require.NoError(t, err)
	authors, err := check.Authors().List(ctx)

	assert.NoError(t, err)
	assert.Empty(t, authors)
	assert.ErrorIs(t, uow.Commit(ctx), recordstore.ErrUnitOfWorkClosed)
}

func Test_UnitOfWork_ConcurrentWritersConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	f := seed(t, engine)

	first, err := engine.Begin(ctx)
	require.NoError(t, err)
	second, err := engine.Begin(ctx)
	require.NoError(t, err)
	reader, err := engine.Begin(ctx)
	require.NoError(t, err)

	_, err = first.Loans().Create(ctx, recordstore.LoanRecord{BookID: f.book.ID, BorrowerID: f.borrower.ID, LoanDate: fakeClock})
	require.NoError(t, err)
	_, err = second.Loans().Create(ctx, recordstore.LoanRecord{BookID: f.book.ID, BorrowerID: f.borrower.ID, LoanDate: fakeClock})
	require.NoError(t, err, "each snapshot sees the book as available")

	// act
	firstErr := first.Commit(ctx)
	secondErr := second.Commit(ctx)
	_, _ = reader.Loans().ListActive(ctx)
	readerErr := reader.Commit(ctx)

	// assert
	assert.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, recordstore.ErrSerializationConflict)
	assert.NoError(t, readerErr, "read-only units of work never conflict")
}

func Test_Begin_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memengine.NewEngine().Begin(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
