package updateborrower

import (
	"github.com/google/uuid"
)

const (
	commandType = "UpdateBorrower"
)

// Command represents a partial update of a borrower. Nil fields stay unchanged.
type Command struct {
	BorrowerID uuid.UUID
	Name       *string
	Email      *string
	Phone      *string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowerID uuid.UUID, name *string, email *string, phone *string) Command {
	return Command{BorrowerID: borrowerID, Name: name, Email: email, Phone: phone}
}
