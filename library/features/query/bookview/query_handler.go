package bookview

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/readmodel"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler reads and assembles one book view.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns the book view or fails with core.ErrBookNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (readmodel.BookView, error) {
	return shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) (readmodel.BookView, error) {
		record, err := consistency.New(session).RequireBook(ctx, query.BookID)
		if err != nil {
			return readmodel.BookView{}, err
		}

		return readmodel.AssembleBookView(ctx, session, shell.BookFromRecord(record))
	})
}
