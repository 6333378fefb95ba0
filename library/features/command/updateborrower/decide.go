package updateborrower

import (
	"strings"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

// Decide applies the provided fields to the current borrower.
//
// Business Rules:
//
//	GIVEN: An existing borrower
//	WHEN: UpdateBorrower command is received
//	THEN: the changed borrower is persisted and a borrower.updated event is staged
//	ERROR: ErrMissingName, ErrInvalidEmail or ErrInvalidPhone for invalid provided values
//	IDEMPOTENCY: If no provided field differs from the current borrower, nothing is persisted
func Decide(current core.Borrower, command Command) (core.Borrower, core.DecisionResult) {
	updated := current

	if command.Name != nil {
		if updated.Name = strings.TrimSpace(*command.Name); updated.Name == "" {
			return current, core.ErrorDecision(core.ErrMissingName)
		}
	}

	if command.Email != nil {
		email, err := core.NormalizeEmail(*command.Email)
		if err != nil {
			return current, core.ErrorDecision(err)
		}

		updated.Email = email
	}

	if command.Phone != nil {
		phone, err := core.NormalizePhone(*command.Phone)
		if err != nil {
			return current, core.ErrorDecision(err)
		}

		updated.Phone = phone
	}

	if updated == current {
		return current, core.IdempotentDecision()
	}

	return updated, core.SuccessDecision()
}
