package deleteauthor

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler deletes an author that no book references anymore.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle deletes the author or fails with core.ErrAuthorNotFound or core.ErrAuthorHasBooks.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[uuid.UUID], error) {
	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			guards := consistency.New(session)

			if _, execErr := guards.RequireAuthor(ctx, command.AuthorID); execErr != nil {
				return nil, execErr
			}

			if execErr := guards.RequireAuthorDeletable(ctx, command.AuthorID); execErr != nil {
				return nil, execErr
			}

			if execErr := session.Authors().Delete(ctx, command.AuthorID); execErr != nil {
				return nil, execErr
			}

			return core.DomainEvents{core.BuildAuthorDeleted(command.AuthorID, h.deps.Now())}, nil
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[uuid.UUID](retryMetrics), err
	}

	return shell.NewSuccessResult(command.AuthorID, retryMetrics), nil
}
