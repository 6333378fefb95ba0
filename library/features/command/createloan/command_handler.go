package createloan

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	logMsgLoanValidationFailed = "loan.validation_failed"

	logAttrBookID     = "book_id"
	logAttrBorrowerID = "borrower_id"
	logAttrLoanDate   = "loan_date"
	logAttrReturnDate = "return_date"
	logAttrError      = "error"
)

// CommandHandler resolves the loan dates, runs the guards and persists the loan in one unit of work.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle creates the loan or fails with a typed domain error.
// Invalid dates are rejected before any unit of work is opened.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[core.Loan], error) {
	loanDate, returnDate, err := core.ResolveLoanDates(command.LoanDate, command.ReturnDate, h.deps.Now())
	if err != nil {
		h.logValidationFailure(ctx, command, err)

		return shell.NewErrorResult[core.Loan](shell.RetryMetrics{}), err
	}

	var loan core.Loan

	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			created, events, execErr := h.executeCommand(ctx, session, command, loanDate, returnDate)
			loan = created

			return events, execErr
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[core.Loan](retryMetrics), err
	}

	return shell.NewSuccessResult(loan, retryMetrics), nil
}

// executeCommand contains the part that is re-run on serialization conflicts.
func (h CommandHandler) executeCommand(
	ctx context.Context,
	session recordstore.Session,
	command Command,
	loanDate core.Timestamp,
	returnDate *core.Timestamp,
) (core.Loan, core.DomainEvents, error) {

	s, err := project(ctx, consistency.New(session), command)
	if err != nil {
		return core.Loan{}, nil, err
	}

	if err = Decide(s).HasError(); err != nil {
		return core.Loan{}, nil, err
	}

	record, err := session.Loans().Create(ctx, recordstore.LoanRecord{
		BookID:     command.BookID,
		BorrowerID: command.BorrowerID,
		LoanDate:   loanDate,
		ReturnDate: returnDate,
	})

	if errors.Is(err, recordstore.ErrActiveLoanConflict) {
		// a concurrent unit of work lent the book after our guard ran
		return core.Loan{}, nil, core.ErrAlreadyBorrowed
	}

	if err != nil {
		return core.Loan{}, nil, err
	}

	loan := shell.LoanFromRecord(record)

	return loan, core.DomainEvents{core.BuildLoanCreated(loan, h.deps.Now())}, nil
}

func (h CommandHandler) logValidationFailure(ctx context.Context, command Command, err error) {
	if h.deps.Logger == nil {
		return
	}

	h.deps.Logger.WarnContext(
		ctx,
		logMsgLoanValidationFailed,
		logAttrBookID, command.BookID.String(),
		logAttrBorrowerID, command.BorrowerID.String(),
		logAttrLoanDate, command.LoanDate,
		logAttrReturnDate, command.ReturnDate,
		logAttrError, err.Error(),
	)
}
