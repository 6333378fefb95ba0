package returnloan

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler loads the loan, decides and persists the return in one unit of work.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle returns the loan. An already returned loan is reported as idempotent and returned unchanged.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[core.Loan], error) {
	var loan core.Loan
	var isIdempotent bool

	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			result, idempotent, events, execErr := h.executeCommand(ctx, session, command)
			loan, isIdempotent = result, idempotent

			return events, execErr
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[core.Loan](retryMetrics), err
	}

	if isIdempotent {
		return shell.NewIdempotentResult(loan, retryMetrics), nil
	}

	return shell.NewSuccessResult(loan, retryMetrics), nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	session recordstore.Session,
	command Command,
) (core.Loan, bool, core.DomainEvents, error) {

	record, err := consistency.New(session).RequireLoan(ctx, command.LoanID)
	if err != nil {
		return core.Loan{}, false, nil, err
	}

	now := h.deps.Now()

	loan, result := Decide(shell.LoanFromRecord(record), now)
	if result.IsIdempotent() {
		return loan, true, nil, nil
	}

	updated, err := session.Loans().Update(ctx, shell.LoanToRecord(loan))
	if err != nil {
		return core.Loan{}, false, nil, err
	}

	loan = shell.LoanFromRecord(updated)

	return loan, false, core.DomainEvents{core.BuildLoanReturned(loan, now)}, nil
}
