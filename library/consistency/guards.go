package consistency

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// Guards checks cross-aggregate invariants within one session.
type Guards struct {
	session recordstore.Session
}

// New creates Guards bound to the given session.
func New(session recordstore.Session) Guards {
	return Guards{session: session}
}

// BookHasActiveLoan reports whether the book is currently on loan.
func (g Guards) BookHasActiveLoan(ctx context.Context, bookID uuid.UUID) (bool, error) {
	return g.session.Loans().HasActiveForBook(ctx, bookID)
}

// BorrowerActiveLoanCount returns the number of outstanding loans of the borrower.
func (g Guards) BorrowerActiveLoanCount(ctx context.Context, borrowerID uuid.UUID) (int, error) {
	return g.session.Loans().CountActiveByBorrower(ctx, borrowerID)
}

// AuthorBookCount returns the number of books referencing the author.
func (g Guards) AuthorBookCount(ctx context.Context, authorID uuid.UUID) (int, error) {
	books, err := g.session.Books().ListByAuthor(ctx, authorID)
	if err != nil {
		return 0, err
	}

	return len(books), nil
}

func (g Guards) AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error) {
	_, found, err := g.session.Authors().GetByID(ctx, authorID)
	return found, err
}

func (g Guards) BookExists(ctx context.Context, bookID uuid.UUID) (bool, error) {
	_, found, err := g.session.Books().GetByID(ctx, bookID)
	return found, err
}

func (g Guards) BorrowerExists(ctx context.Context, borrowerID uuid.UUID) (bool, error) {
	_, found, err := g.session.Borrowers().GetByID(ctx, borrowerID)
	return found, err
}

// RequireAuthor loads the author or fails with core.ErrAuthorNotFound.
func (g Guards) RequireAuthor(ctx context.Context, authorID uuid.UUID) (recordstore.AuthorRecord, error) {
	return require[recordstore.AuthorRecord](ctx, g.session.Authors(), authorID, core.ErrAuthorNotFound)
}

// RequireBook loads the book or fails with core.ErrBookNotFound.
func (g Guards) RequireBook(ctx context.Context, bookID uuid.UUID) (recordstore.BookRecord, error) {
	return require[recordstore.BookRecord](ctx, g.session.Books(), bookID, core.ErrBookNotFound)
}

// RequireBorrower loads the borrower or fails with core.ErrBorrowerNotFound.
func (g Guards) RequireBorrower(ctx context.Context, borrowerID uuid.UUID) (recordstore.BorrowerRecord, error) {
	return require[recordstore.BorrowerRecord](ctx, g.session.Borrowers(), borrowerID, core.ErrBorrowerNotFound)
}

// RequireLoan loads the loan or fails with core.ErrLoanNotFound.
func (g Guards) RequireLoan(ctx context.Context, loanID uuid.UUID) (recordstore.LoanRecord, error) {
	return require[recordstore.LoanRecord](ctx, g.session.Loans(), loanID, core.ErrLoanNotFound)
}

// RequireBookAvailable fails with core.ErrAlreadyBorrowed while the book has an active loan.
func (g Guards) RequireBookAvailable(ctx context.Context, bookID uuid.UUID) error {
	active, err := g.BookHasActiveLoan(ctx, bookID)
	if err != nil {
		return err
	}

	if active {
		return core.ErrAlreadyBorrowed
	}

	return nil
}

// RequireBookDeletable fails with core.ErrActiveLoanExists while the book has an active loan.
func (g Guards) RequireBookDeletable(ctx context.Context, bookID uuid.UUID) error {
	active, err := g.BookHasActiveLoan(ctx, bookID)
	if err != nil {
		return err
	}

	if active {
		return core.ErrActiveLoanExists
	}

	return nil
}

// RequireBorrowerDeletable fails with core.ErrActiveLoanExists while the borrower has any active loan.
func (g Guards) RequireBorrowerDeletable(ctx context.Context, borrowerID uuid.UUID) error {
	count, err := g.BorrowerActiveLoanCount(ctx, borrowerID)
	if err != nil {
		return err
	}

	if count > 0 {
		return core.ErrActiveLoanExists
	}

	return nil
}

// RequireAuthorDeletable fails with core.ErrAuthorHasBooks while books reference the author.
func (g Guards) RequireAuthorDeletable(ctx context.Context, authorID uuid.UUID) error {
	count, err := g.AuthorBookCount(ctx, authorID)
	if err != nil {
		return err
	}

	if count > 0 {
		return core.ErrAuthorHasBooks
	}

	return nil
}

type getter[T any] interface {
	GetByID(ctx context.Context, id uuid.UUID) (T, bool, error)
}

func require[T any](ctx context.Context, store getter[T], id uuid.UUID, notFound error) (T, error) {
	record, found, err := store.GetByID(ctx, id)
	if err != nil {
		return record, err
	}

	if !found {
		return record, notFound
	}

	return record, nil
}
