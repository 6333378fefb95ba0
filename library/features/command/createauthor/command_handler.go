package createauthor

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler persists a new author in one unit of work.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle validates and creates the author.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[core.Author], error) {
	author, result := Decide(command)
	if err := result.HasError(); err != nil {
		return shell.NewErrorResult[core.Author](shell.RetryMetrics{}), err
	}

	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			record, createErr := session.Authors().Create(ctx, shell.AuthorToRecord(author))
			if createErr != nil {
				return nil, createErr
			}

			author = shell.AuthorFromRecord(record)

			return core.DomainEvents{core.BuildAuthorCreated(author, h.deps.Now())}, nil
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[core.Author](retryMetrics), err
	}

	return shell.NewSuccessResult(author, retryMetrics), nil
}
