package recordstore

import (
	"context"

	"github.com/google/uuid"
)

// EntityStore is the generic contract every aggregate store fulfils.
//
// GetByID reports a missing record with found=false and a nil error.
// Create and Update return the record with store-assigned fields (id, timestamps) refreshed.
// Delete is a no-op when the record does not exist.
type EntityStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (record T, found bool, err error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AuthorStore interface {
	EntityStore[AuthorRecord]
}

type BookStore interface {
	EntityStore[BookRecord]
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]BookRecord, error)
}

type BorrowerStore interface {
	EntityStore[BorrowerRecord]
}

type LoanStore interface {
	EntityStore[LoanRecord]
	ListActive(ctx context.Context) ([]LoanRecord, error)
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]LoanRecord, error)
	CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int, error)
	HasActiveForBook(ctx context.Context, bookID uuid.UUID) (bool, error)
}

type UserStore interface {
	EntityStore[UserRecord]
	GetByUsername(ctx context.Context, username string) (record UserRecord, found bool, err error)
}

// Session gives access to all aggregate stores bound to one unit of work.
type Session interface {
	Authors() AuthorStore
	Books() BookStore
	Borrowers() BorrowerStore
	Loans() LoanStore
	Users() UserStore
}

// UnitOfWork is a Session that must end with exactly one Commit or Rollback.
// Rollback after a successful Commit is a no-op, so it is safe to defer.
type UnitOfWork interface {
	Session
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Engine opens units of work.
type Engine interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
