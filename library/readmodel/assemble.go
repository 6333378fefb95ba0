package readmodel

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// Session is the part of a unit of work the assembly functions read from.
type Session interface {
	Authors() recordstore.AuthorStore
	Loans() recordstore.LoanStore
	Books() recordstore.BookStore
}

// AssembleBookView resolves the author of book.
func AssembleBookView(ctx context.Context, session Session, book core.Book) (BookView, error) {
	views, err := AssembleBookViews(ctx, session, []core.Book{book})
	if err != nil {
		return BookView{}, err
	}

	return views[0], nil
}

// AssembleBookViews resolves the authors of all books, each author is read once.
func AssembleBookViews(ctx context.Context, session Session, books []core.Book) ([]BookView, error) {
	authorNames := make(map[uuid.UUID]*string)
	views := make([]BookView, 0, len(books))

	for _, book := range books {
		name, resolved := authorNames[book.AuthorID]
		if !resolved {
			author, found, err := session.Authors().GetByID(ctx, book.AuthorID)
			if err != nil {
				return nil, err
			}

			if found {
				name = &author.Name
			}

			authorNames[book.AuthorID] = name
		}

		views = append(views, BookView{Book: book, AuthorName: name})
	}

	return views, nil
}

// AssembleBorrowerProfile attaches all loans of borrower, in store order.
func AssembleBorrowerProfile(ctx context.Context, session Session, borrower core.Borrower) (BorrowerProfile, error) {
	loans, err := session.Loans().ListByBorrower(ctx, borrower.ID)
	if err != nil {
		return BorrowerProfile{}, err
	}

	return BorrowerProfile{Borrower: borrower, Loans: shell.LoansFromRecords(loans)}, nil
}

// AssembleAuthorProfile attaches all books of author, each annotated with the author's name.
func AssembleAuthorProfile(ctx context.Context, session Session, author core.Author) (AuthorProfile, error) {
	records, err := session.Books().ListByAuthor(ctx, author.ID)
	if err != nil {
		return AuthorProfile{}, err
	}

	books := make([]BookView, 0, len(records))
	for _, record := range records {
		name := author.Name
		books = append(books, BookView{Book: shell.BookFromRecord(record), AuthorName: &name})
	}

	return AuthorProfile{Author: author, Books: books}, nil
}

// AssembleAuthorProfiles builds the profile of every author.
func AssembleAuthorProfiles(ctx context.Context, session Session, authors []core.Author) ([]AuthorProfile, error) {
	profiles := make([]AuthorProfile, 0, len(authors))

	for _, author := range authors {
		profile, err := AssembleAuthorProfile(ctx, session, author)
		if err != nil {
			return nil, err
		}

		profiles = append(profiles, profile)
	}

	return profiles, nil
}
