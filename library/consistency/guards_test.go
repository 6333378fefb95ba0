package consistency_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/memengine"
)

type world struct {
	uow      recordstore.UnitOfWork
	guards   consistency.Guards
	author   recordstore.AuthorRecord
	book     recordstore.BookRecord
	borrower recordstore.BorrowerRecord
}

func setupWorld(t *testing.T) (context.Context, world) {
	t.Helper()
	ctx := context.Background()

	uow, err := memengine.NewEngine().Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = uow.Rollback(ctx) })

	author, err := uow.Authors().Create(ctx, recordstore.AuthorRecord{Name: "A. Poe"})
	require.NoError(t, err)
	book, err := uow.Books().Create(ctx, recordstore.BookRecord{Title: "Tales", ISBN: "1", AuthorID: author.ID})
	require.NoError(t, err)
	borrower, err := uow.Borrowers().Create(ctx, recordstore.BorrowerRecord{Name: "R", Email: "r@example.com", Phone: "+14155551234"})
	require.NoError(t, err)

	return ctx, world{uow: uow, guards: consistency.New(uow), author: author, book: book, borrower: borrower}
}

func (w world) lend(ctx context.Context, t *testing.T) recordstore.LoanRecord {
	t.Helper()

	loan, err := w.uow.Loans().Create(ctx, recordstore.LoanRecord{BookID: w.book.ID, BorrowerID: w.borrower.ID, LoanDate: time.Now()})
	require.NoError(t, err)

	return loan
}

func Test_Guards_WithoutLoans(t *testing.T) {
	ctx, w := setupWorld(t)

	assert.NoError(t, w.guards.RequireBookAvailable(ctx, w.book.ID))
	assert.NoError(t, w.guards.RequireBookDeletable(ctx, w.book.ID))
	assert.NoError(t, w.guards.RequireBorrowerDeletable(ctx, w.borrower.ID))

	count, err := w.guards.BorrowerActiveLoanCount(ctx, w.borrower.ID)
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func Test_Guards_WithActiveLoan(t *testing.T) {
	// arrange
	ctx, w := setupWorld(t)
	w.lend(ctx, t)

	// act
	hasActive, err := w.guards.BookHasActiveLoan(ctx, w.book.ID)

	// assert
	assert.NoError(t, err)
	assert.True(t, hasActive)
	assert.ErrorIs(t, w.guards.RequireBookAvailable(ctx, w.book.ID), core.ErrAlreadyBorrowed)
	assert.ErrorIs(t, w.guards.RequireBookDeletable(ctx, w.book.ID), core.ErrActiveLoanExists)
	assert.ErrorIs(t, w.guards.RequireBorrowerDeletable(ctx, w.borrower.ID), core.ErrActiveLoanExists)
}

func Test_Guards_WithReturnedLoanOnly(t *testing.T) {
	// arrange
	ctx, w := setupWorld(t)
	loan := w.lend(ctx, t)
	returnDate := loan.LoanDate.Add(time.Minute)
	loan.ReturnDate = &returnDate
	_, err := w.uow.Loans().Update(ctx, loan)
	require.NoError(t, err)

	// act & assert
	assert.NoError(t, w.guards.RequireBookAvailable(ctx, w.book.ID))
	assert.NoError(t, w.guards.RequireBorrowerDeletable(ctx, w.borrower.ID))
}

func Test_Guards_AuthorWithBooks(t *testing.T) {
	ctx, w := setupWorld(t)

	count, err := w.guards.AuthorBookCount(ctx, w.author.ID)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.ErrorIs(t, w.guards.RequireAuthorDeletable(ctx, w.author.ID), core.ErrAuthorHasBooks)
	assert.NoError(t, w.guards.RequireAuthorDeletable(ctx, uuid.New()))
}

func Test_Guards_Existence(t *testing.T) {
	ctx, w := setupWorld(t)
	unknown := uuid.New()

	exists, err := w.guards.AuthorExists(ctx, w.author.ID)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = w.guards.BookExists(ctx, unknown)
	assert.NoError(t, err)
	assert.False(t, exists)

	exists, err = w.guards.BorrowerExists(ctx, w.borrower.ID)
	assert.NoError(t, err)
	assert.True(t, exists)

	book, err := w.guards.RequireBook(ctx, w.book.ID)
	assert.NoError(t, err)
	assert.Equal(t, w.book.Title, book.Title)

	_, err = w.guards.RequireAuthor(ctx, unknown)
	assert.ErrorIs(t, err, core.ErrAuthorNotFound)
	_, err = w.guards.RequireBook(ctx, unknown)
	assert.ErrorIs(t, err, core.ErrBookNotFound)
	_, err = w.guards.RequireBorrower(ctx, unknown)
	assert.ErrorIs(t, err, core.ErrBorrowerNotFound)
	_, err = w.guards.RequireLoan(ctx, unknown)
	assert.ErrorIs(t, err, core.ErrLoanNotFound)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
