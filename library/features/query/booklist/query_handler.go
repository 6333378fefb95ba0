package booklist

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/readmodel"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler reads and assembles all book views.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns all book views in store order.
func (h QueryHandler) Handle(ctx context.Context, _ Query) ([]readmodel.BookView, error) {
	return shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) ([]readmodel.BookView, error) {
		records, err := session.Books().List(ctx)
		if err != nil {
			return nil, err
		}

		books := make([]core.Book, 0, len(records))
		for _, record := range records {
			books = append(books, shell.BookFromRecord(record))
		}

		return readmodel.AssembleBookViews(ctx, session, books)
	})
}
