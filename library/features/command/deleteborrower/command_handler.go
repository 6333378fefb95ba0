package deleteborrower

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler deletes a borrower without active loans.
// Returned loans of the borrower are removed with it.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle deletes the borrower or fails with core.ErrBorrowerNotFound or core.ErrActiveLoanExists.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[uuid.UUID], error) {
	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			guards := consistency.New(session)

			if _, execErr := guards.RequireBorrower(ctx, command.BorrowerID); execErr != nil {
				return nil, execErr
			}

			if execErr := guards.RequireBorrowerDeletable(ctx, command.BorrowerID); execErr != nil {
				return nil, execErr
			}

			if execErr := session.Borrowers().Delete(ctx, command.BorrowerID); execErr != nil {
				return nil, execErr
			}

			return core.DomainEvents{core.BuildBorrowerDeleted(command.BorrowerID, h.deps.Now())}, nil
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[uuid.UUID](retryMetrics), err
	}

	return shell.NewSuccessResult(command.BorrowerID, retryMetrics), nil
}
