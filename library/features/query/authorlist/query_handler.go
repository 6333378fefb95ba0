package authorlist

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/readmodel"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler reads and assembles all author profiles.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns all author profiles in store order. No authors is an empty list, not an error.
func (h QueryHandler) Handle(ctx context.Context, _ Query) ([]readmodel.AuthorProfile, error) {
	return shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) ([]readmodel.AuthorProfile, error) {
		records, err := session.Authors().List(ctx)
		if err != nil {
			return nil, err
		}

		authors := make([]core.Author, 0, len(records))
		for _, record := range records {
			authors = append(authors, shell.AuthorFromRecord(record))
		}

		return readmodel.AssembleAuthorProfiles(ctx, session, authors)
	})
}
