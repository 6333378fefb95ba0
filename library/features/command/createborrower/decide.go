package createborrower

import (
	"strings"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

// Decide validates and normalizes the command and returns the borrower to persist.
// Email uniqueness is enforced by the store.
//
// Business Rules:
//
//	WHEN: CreateBorrower command is received
//	THEN: a Borrower is persisted and a borrower.created event is staged
//	ERROR: ErrMissingName if the name is blank
//	ERROR: ErrInvalidEmail if the email is not a bare address
//	ERROR: ErrInvalidPhone if the phone is not E.164 after stripping separators
func Decide(command Command) (core.Borrower, core.DecisionResult) {
	name := strings.TrimSpace(command.Name)
	if name == "" {
		return core.Borrower{}, core.ErrorDecision(core.ErrMissingName)
	}

	email, err := core.NormalizeEmail(command.Email)
	if err != nil {
		return core.Borrower{}, core.ErrorDecision(err)
	}

	phone, err := core.NormalizePhone(command.Phone)
	if err != nil {
		return core.Borrower{}, core.ErrorDecision(err)
	}

	return core.Borrower{Name: name, Email: email, Phone: phone}, core.SuccessDecision()
}
