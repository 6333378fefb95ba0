package borrowerprofile

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/readmodel"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler reads and assembles a borrower profile.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns the borrower with the full loan history or fails with core.ErrBorrowerNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (readmodel.BorrowerProfile, error) {
	return shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) (readmodel.BorrowerProfile, error) {
		record, err := consistency.New(session).RequireBorrower(ctx, query.BorrowerID)
		if err != nil {
			return readmodel.BorrowerProfile{}, err
		}

		return readmodel.AssembleBorrowerProfile(ctx, session, shell.BorrowerFromRecord(record))
	})
}
