package activeloans

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler reads all active loans in one read-only unit of work.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns the active loans in store order, an empty slice when there are none.
func (h QueryHandler) Handle(ctx context.Context, _ Query) ([]core.Loan, error) {
	return shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) ([]core.Loan, error) {
		records, err := session.Loans().ListActive(ctx)
		if err != nil {
			return nil, err
		}

		return shell.LoansFromRecords(records), nil
	})
}
