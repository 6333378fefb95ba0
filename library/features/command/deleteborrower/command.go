package deleteborrower

import (
	"github.com/google/uuid"
)

const (
	commandType = "DeleteBorrower"
)

// Command represents the intent to delete a borrower.
type Command struct {
	BorrowerID uuid.UUID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowerID uuid.UUID) Command {
	return Command{BorrowerID: borrowerID}
}
