package createbook

import (
	"github.com/google/uuid"
)

const (
	commandType = "CreateBook"
)

// Command represents the intent to add a book by an existing author.
type Command struct {
	Title         string
	ISBN          string
	PublishedDate string
	AuthorID      uuid.UUID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(title string, isbn string, publishedDate string, authorID uuid.UUID) Command {
	return Command{
		Title:         title,
		ISBN:          isbn,
		PublishedDate: publishedDate,
		AuthorID:      authorID,
	}
}
