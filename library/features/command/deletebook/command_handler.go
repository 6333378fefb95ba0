package deletebook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler deletes a book that is not on an active loan.
// Returned loans of the book are removed with it.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle deletes the book or fails with core.ErrBookNotFound or core.ErrActiveLoanExists.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[uuid.UUID], error) {
	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			guards := consistency.New(session)

			if _, execErr := guards.RequireBook(ctx, command.BookID); execErr != nil {
				return nil, execErr
			}

			if execErr := guards.RequireBookDeletable(ctx, command.BookID); execErr != nil {
				return nil, execErr
			}

			if execErr := session.Books().Delete(ctx, command.BookID); execErr != nil {
				return nil, execErr
			}

			return core.DomainEvents{core.BuildBookDeleted(command.BookID, h.deps.Now())}, nil
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[uuid.UUID](retryMetrics), err
	}

	return shell.NewSuccessResult(command.BookID, retryMetrics), nil
}
