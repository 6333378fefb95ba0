package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	LoanStatusActive   = "ACTIVE"
	LoanStatusReturned = "RETURNED"
)

// Author writes zero or more books.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Book references exactly one author.
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	ISBN          string    `json:"isbn"`
	PublishedDate time.Time `json:"published_date"`
	AuthorID      uuid.UUID `json:"author_id"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
}

// Borrower holds a unique email and an E.164 phone number.
type Borrower struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Loan is active while ReturnDate is nil.
type Loan struct {
	ID         uuid.UUID  `json:"id"`
	BookID     uuid.UUID  `json:"book_id"`
	BorrowerID uuid.UUID  `json:"borrower_id"`
	LoanDate   Timestamp  `json:"loan_date"`
	ReturnDate *Timestamp `json:"return_date"`
	CreatedAt  Timestamp  `json:"created_at"`
	UpdatedAt  Timestamp  `json:"updated_at"`
}

// User is an API account, it is not part of the lending domain.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    Timestamp `json:"created_at"`
}

// IsActive reports whether the loan is still outstanding.
func (l Loan) IsActive() bool {
	return l.ReturnDate == nil
}

// Status is ACTIVE or RETURNED.
func (l Loan) Status() string {
	if l.IsActive() {
		return LoanStatusActive
	}

	return LoanStatusReturned
}

// Return moves an active loan to RETURNED at the given time.
// RETURNED is terminal, returning again leaves the loan unchanged and reports changed=false.
func (l Loan) Return(at time.Time) (returned Loan, changed bool) {
	if !l.IsActive() {
		return l, false
	}

	returnDate := ToTimestamp(at)
	if returnDate.Before(l.LoanDate) {
		// a loan dated into the future is returned the moment it starts
		returnDate = l.LoanDate
	}

	l.ReturnDate = &returnDate

	return l, true
}
