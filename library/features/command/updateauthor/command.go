package updateauthor

import (
	"github.com/google/uuid"
)

const (
	commandType = "UpdateAuthor"
)

// Command represents a partial update of an author. Nil fields stay unchanged.
type Command struct {
	AuthorID uuid.UUID
	Name     *string
	Bio      *string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(authorID uuid.UUID, name *string, bio *string) Command {
	return Command{AuthorID: authorID, Name: name, Bio: bio}
}
