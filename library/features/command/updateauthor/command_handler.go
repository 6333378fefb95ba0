package updateauthor

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler loads, decides and persists an author update in one unit of work.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle updates the author. An update that changes nothing is reported as idempotent.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[core.Author], error) {
	var author core.Author
	var isIdempotent bool

	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			isIdempotent = false

			record, execErr := consistency.New(session).RequireAuthor(ctx, command.AuthorID)
			if execErr != nil {
				return nil, execErr
			}

			updated, result := Decide(shell.AuthorFromRecord(record), command)
			if execErr = result.HasError(); execErr != nil {
				return nil, execErr
			}

			author = updated

			if result.IsIdempotent() {
				isIdempotent = true
				return nil, nil
			}

			record, execErr = session.Authors().Update(ctx, shell.AuthorToRecord(updated))
			if execErr != nil {
				return nil, execErr
			}

			author = shell.AuthorFromRecord(record)

			return core.DomainEvents{core.BuildAuthorUpdated(author, h.deps.Now())}, nil
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[core.Author](retryMetrics), err
	}

	if isIdempotent {
		return shell.NewIdempotentResult(author, retryMetrics), nil
	}

	return shell.NewSuccessResult(author, retryMetrics), nil
}
