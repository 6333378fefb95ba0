package borrowerdetails

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler reads one borrower.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns the borrower or fails with core.ErrBorrowerNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Borrower, error) {
	return shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) (core.Borrower, error) {
		record, err := consistency.New(session).RequireBorrower(ctx, query.BorrowerID)
		if err != nil {
			return core.Borrower{}, err
		}

		return shell.BorrowerFromRecord(record), nil
	})
}
