package deleteauthor

import (
	"github.com/google/uuid"
)

const (
	commandType = "DeleteAuthor"
)

// Command represents the intent to delete an author.
type Command struct {
	AuthorID uuid.UUID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(authorID uuid.UUID) Command {
	return Command{AuthorID: authorID}
}
