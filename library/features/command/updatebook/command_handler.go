package updatebook

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/readmodel"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// CommandHandler loads, decides and persists a book update and returns the book's view.
type CommandHandler struct {
	deps shell.Dependencies
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(deps shell.Dependencies) CommandHandler {
	return CommandHandler{deps: deps}
}

// Handle updates the book. An update that changes nothing is reported as idempotent.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[readmodel.BookView], error) {
	var view readmodel.BookView
	var isIdempotent bool

	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		h.deps.Publisher,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			events, idempotent, execErr := h.executeCommand(ctx, session, command, &view)
			isIdempotent = idempotent

			return events, execErr
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[readmodel.BookView](retryMetrics), err
	}

	if isIdempotent {
		return shell.NewIdempotentResult(view, retryMetrics), nil
	}

	return shell.NewSuccessResult(view, retryMetrics), nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	session recordstore.Session,
	command Command,
	view *readmodel.BookView,
) (core.DomainEvents, bool, error) {

	guards := consistency.New(session)

	record, err := guards.RequireBook(ctx, command.BookID)
	if err != nil {
		return nil, false, err
	}

	book, result := Decide(shell.BookFromRecord(record), command)
	if err = result.HasError(); err != nil {
		return nil, false, err
	}

	if !result.IsIdempotent() {
		if _, err = guards.RequireAuthor(ctx, book.AuthorID); err != nil {
			return nil, false, err
		}

		if record, err = session.Books().Update(ctx, shell.BookToRecord(book)); err != nil {
			return nil, false, err
		}

		book = shell.BookFromRecord(record)
	}

	if *view, err = readmodel.AssembleBookView(ctx, session, book); err != nil {
		return nil, false, err
	}

	if result.IsIdempotent() {
		return nil, true, nil
	}

	return core.DomainEvents{core.BuildBookUpdated(book, h.deps.Now())}, false, nil
}
