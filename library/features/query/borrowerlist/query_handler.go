package borrowerlist

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler reads all borrowers.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns all borrowers in store order.
func (h QueryHandler) Handle(ctx context.Context, _ Query) ([]core.Borrower, error) {
	return shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) ([]core.Borrower, error) {
		records, err := session.Borrowers().List(ctx)
		if err != nil {
			return nil, err
		}

		borrowers := make([]core.Borrower, 0, len(records))
		for _, record := range records {
			borrowers = append(borrowers, shell.BorrowerFromRecord(record))
		}

		return borrowers, nil
	})
}
