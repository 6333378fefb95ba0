package createloan

import (
	"github.com/google/uuid"
)

const (
	commandType = "CreateLoan"
)

// Command represents the intent to lend a book to a borrower.
// The dates are kept raw, they are resolved by the handler.
type Command struct {
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	LoanDate   string
	ReturnDate string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, borrowerID uuid.UUID, loanDate string, returnDate string) Command {
	return Command{
		BookID:     bookID,
		BorrowerID: borrowerID,
		LoanDate:   loanDate,
		ReturnDate: returnDate,
	}
}
