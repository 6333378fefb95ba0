package createbook

import (
	"strings"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

// Decide validates the command and returns the book to persist.
// Whether the author exists is checked by the handler inside the unit of work.
//
// Business Rules:
//
//	WHEN: CreateBook command is received
//	THEN: a Book is persisted and a book.created event is staged
//	ERROR: ErrMissingTitle if the title is blank
//	ERROR: ErrMissingISBN if the isbn is blank
//	ERROR: ErrInvalidPublishedDate if the published date is not a date
func Decide(command Command) (core.Book, core.DecisionResult) {
	book := core.Book{
		Title:    strings.TrimSpace(command.Title),
		ISBN:     strings.TrimSpace(command.ISBN),
		AuthorID: command.AuthorID,
	}

	if book.Title == "" {
		return core.Book{}, core.ErrorDecision(core.ErrMissingTitle)
	}

	if book.ISBN == "" {
		return core.Book{}, core.ErrorDecision(core.ErrMissingISBN)
	}

	publishedDate, err := core.ParseDate(command.PublishedDate)
	if err != nil {
		return core.Book{}, core.ErrorDecision(err)
	}

	book.PublishedDate = publishedDate

	return book, core.SuccessDecision()
}
