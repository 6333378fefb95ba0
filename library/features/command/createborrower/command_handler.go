package createborrower

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler persists a new borrower in one unit of work.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle validates and creates the borrower or fails with core.ErrEmailAlreadyExists.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[core.Borrower], error) {
	borrower, result := Decide(command)
	if err := result.HasError(); err != nil {
		return shell.NewErrorResult[core.Borrower](shell.RetryMetrics{}), err
	}

	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			record, createErr := session.Borrowers().Create(ctx, shell.BorrowerToRecord(borrower))
			if errors.Is(createErr, recordstore.ErrUniqueViolation) {
				return nil, core.ErrEmailAlreadyExists
			}

			if createErr != nil {
				return nil, createErr
			}

			borrower = shell.BorrowerFromRecord(record)

			return core.DomainEvents{core.BuildBorrowerCreated(borrower, h.deps.Now())}, nil
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[core.Borrower](retryMetrics), err
	}

	return shell.NewSuccessResult(borrower, retryMetrics), nil
}
