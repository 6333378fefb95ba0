package authorprofile

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/consistency"
	"github.com/AntonStoeckl/library-records-go/library/readmodel"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler reads and assembles an author profile.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns the author with all books or fails with core.ErrAuthorNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (readmodel.AuthorProfile, error) {
	return shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) (readmodel.AuthorProfile, error) {
		record, err := consistency.New(session).RequireAuthor(ctx, query.AuthorID)
		if err != nil {
			return readmodel.AuthorProfile{}, err
		}

		return readmodel.AssembleAuthorProfile(ctx, session, shell.AuthorFromRecord(record))
	})
}
