package readmodel

import (
	"github.com/AntonStoeckl/library-records-go/library/core"
)

// BookView is a Book annotated with the name of its author.
type BookView struct {
	core.Book
	AuthorName *string `json:"author_name"`
}

// BorrowerProfile is a Borrower with the full history of its loans.
type BorrowerProfile struct {
	core.Borrower
	Loans []core.Loan `json:"loans"`
}

// AuthorProfile is an Author with all books written by the author.
type AuthorProfile struct {
	core.Author
	Books []BookView `json:"books"`
}
