package updatebook

import (
	"github.com/google/uuid"
)

const (
	commandType = "UpdateBook"
)

// Command represents a partial update of a book. Nil fields stay unchanged.
type Command struct {
	BookID        uuid.UUID
	Title         *string
	ISBN          *string
	PublishedDate *string
	AuthorID      *uuid.UUID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, title *string, isbn *string, publishedDate *string, authorID *uuid.UUID) Command {
	return Command{
		BookID:        bookID,
		Title:         title,
		ISBN:          isbn,
		PublishedDate: publishedDate,
		AuthorID:      authorID,
	}
}
