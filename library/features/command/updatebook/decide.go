package updatebook

import (
	"strings"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

// Decide applies the provided fields to the current book.
// Whether a new author exists is checked by the handler inside the unit of work.
//
// Business Rules:
//
//	GIVEN: An existing book
//	WHEN: UpdateBook command is received
//	THEN: the changed book is persisted and a book.updated event is staged
//	ERROR: ErrMissingTitle or ErrMissingISBN if a blank value is provided
//	ERROR: ErrInvalidPublishedDate if a published date is provided that is not a date
//	IDEMPOTENCY: If no provided field differs from the current book, nothing is persisted
func Decide(current core.Book, command Command) (core.Book, core.DecisionResult) {
	updated := current

	if command.Title != nil {
		if updated.Title = strings.TrimSpace(*command.Title); updated.Title == "" {
			return current, core.ErrorDecision(core.ErrMissingTitle)
		}
	}

	if command.ISBN != nil {
		if updated.ISBN = strings.TrimSpace(*command.ISBN); updated.ISBN == "" {
			return current, core.ErrorDecision(core.ErrMissingISBN)
		}
	}

	if command.PublishedDate != nil {
		publishedDate, err := core.ParseDate(*command.PublishedDate)
		if err != nil {
			return current, core.ErrorDecision(err)
		}

		updated.PublishedDate = publishedDate
	}

	if command.AuthorID != nil {
		updated.AuthorID = *command.AuthorID
	}

	if updated.Title == current.Title &&
		updated.ISBN == current.ISBN &&
		updated.PublishedDate.Equal(current.PublishedDate) &&
		updated.AuthorID == current.AuthorID {

		return current, core.IdempotentDecision()
	}

	return updated, core.SuccessDecision()
}
