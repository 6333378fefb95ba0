package createloan

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
)

// state is what the guards report about the book and the borrower of a loan request.
type state struct {
	bookExists        bool
	borrowerExists    bool
	bookHasActiveLoan bool
}

// Decide implements the business rules for lending a book.
// It is a pure function, all reads happen in project.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a borrower with BorrowerID
//	WHEN: CreateLoan command is received
//	THEN: a Loan is persisted and a loan.created event is staged
//	ERROR: ErrBookNotFound if the book does not exist
//	ERROR: ErrBorrowerNotFound if the borrower does not exist
//	ERROR: ErrAlreadyBorrowed if the book has an active loan
func Decide(s state) core.DecisionResult {
	if !s.bookExists {
		return core.ErrorDecision(core.ErrBookNotFound)
	}

	if !s.borrowerExists {
		return core.ErrorDecision(core.ErrBorrowerNotFound)
	}

	if s.bookHasActiveLoan {
		return core.ErrorDecision(core.ErrAlreadyBorrowed)
	}

	return core.SuccessDecision()
}

func project(ctx context.Context, guards consistency.Guards, command Command) (state, error) {
	var s state
	var err error

	if s.bookExists, err = guards.BookExists(ctx, command.BookID); err != nil {
		return s, err
	}

	if s.borrowerExists, err = guards.BorrowerExists(ctx, command.BorrowerID); err != nil {
		return s, err
	}

	if s.bookHasActiveLoan, err = guards.BookHasActiveLoan(ctx, command.BookID); err != nil {
		return s, err
	}

	return s, nil
}
