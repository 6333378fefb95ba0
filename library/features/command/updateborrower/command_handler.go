package updateborrower

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler loads, decides and persists a borrower update in one unit of work.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle updates the borrower. An update that changes nothing is reported as idempotent.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[core.Borrower], error) {
	var borrower core.Borrower
	var isIdempotent bool

	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			isIdempotent = false

			record, execErr := consistency.New(session).RequireBorrower(ctx, command.BorrowerID)
			if execErr != nil {
				return nil, execErr
			}

			updated, result := Decide(shell.BorrowerFromRecord(record), command)
			if execErr = result.HasError(); execErr != nil {
				return nil, execErr
			}

			borrower = updated

			if result.IsIdempotent() {
				isIdempotent = true
				return nil, nil
			}

			record, execErr = session.Borrowers().Update(ctx, shell.BorrowerToRecord(updated))
			if errors.Is(execErr, recordstore.ErrUniqueViolation) {
				return nil, core.ErrEmailAlreadyExists
			}

			if execErr != nil {
				return nil, execErr
			}

			borrower = shell.BorrowerFromRecord(record)

			return core.DomainEvents{core.BuildBorrowerUpdated(borrower, h.deps.Now())}, nil
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[core.Borrower](retryMetrics), err
	}

	if isIdempotent {
		return shell.NewIdempotentResult(borrower, retryMetrics), nil
	}

	return shell.NewSuccessResult(borrower, retryMetrics), nil
}
