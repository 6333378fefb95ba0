package createbook

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/readmodel"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler persists a new book and returns its view, all in one unit of work.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle validates and creates the book or fails with core.ErrAuthorNotFound.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[readmodel.BookView], error) {
	book, result := Decide(command)
	if err := result.HasError(); err != nil {
		return shell.NewErrorResult[readmodel.BookView](shell.RetryMetrics{}), err
	}

	var view readmodel.BookView

	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			if _, execErr := consistency.New(session).RequireAuthor(ctx, book.AuthorID); execErr != nil {
				return nil, execErr
			}

			record, execErr := session.Books().Create(ctx, shell.BookToRecord(book))
			if execErr != nil {
				return nil, execErr
			}

			created := shell.BookFromRecord(record)

			if view, execErr = readmodel.AssembleBookView(ctx, session, created); execErr != nil {
				return nil, execErr
			}

			return core.DomainEvents{core.BuildBookCreated(created, h.deps.Now())}, nil
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[readmodel.BookView](retryMetrics), err
	}

	return shell.NewSuccessResult(view, retryMetrics), nil
}
