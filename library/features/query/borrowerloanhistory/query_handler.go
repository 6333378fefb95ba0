package borrowerloanhistory

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler reads the loan history of a borrower in one read-only unit of work.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns all loans of the borrower in store order.
// An unknown borrower simply has no history.
func (h QueryHandler) Handle(ctx context.Context, query Query) ([]core.Loan, error) {
	return shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) ([]core.Loan, error) {
		records, err := session.Loans().ListByBorrower(ctx, query.BorrowerID)
		if err != nil {
			return nil, err
		}

		return shell.LoansFromRecords(records), nil
	})
}
