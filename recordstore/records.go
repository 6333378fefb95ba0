package recordstore

import (
	"time"

	"github.com/google/uuid"
)

// AuthorRecord is the persisted shape of an author.
type AuthorRecord struct {
	ID        uuid.UUID
	Name      string
	Bio       *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookRecord is the persisted shape of a book.
type BookRecord struct {
	ID            uuid.UUID
	Title         string
	ISBN          string
	PublishedDate time.Time
	AuthorID      uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BorrowerRecord is the persisted shape of a borrower. Email is unique across borrowers.
type BorrowerRecord struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoanRecord is the persisted shape of a loan. A nil ReturnDate marks an active loan.
type LoanRecord struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	LoanDate   time.Time
	ReturnDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive reports whether the loan has not been returned yet.
func (r LoanRecord) IsActive() bool {
	return r.ReturnDate == nil
}

// UserRecord is the persisted shape of an API user. Username is unique.
type UserRecord struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
