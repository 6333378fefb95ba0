package authenticateuser

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// QueryHandler checks a username and password against the stored bcrypt hash.
type QueryHandler struct {
	deps shell.Dependencies
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(deps shell.Dependencies) QueryHandler {
	return QueryHandler{deps: deps}
}

// Handle returns the matching user. An unknown user and a wrong password both fail with
// core.ErrInvalidCredentials.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.User, error) {
	username := strings.TrimSpace(query.Username)
	if username == "" || query.Password == "" {
		return core.User{}, core.ErrMissingCredentials
	}

	user, err := shell.ReadInUnitOfWork(ctx, h.deps.Engine, func(ctx context.Context, session recordstore.Session) (core.User, error) {
		record, found, readErr := session.Users().GetByUsername(ctx, username)
		if readErr != nil {
			return core.User{}, readErr
		}

		if !found {
			return core.User{}, core.ErrInvalidCredentials
		}

		return shell.UserFromRecord(record), nil
	})

	if err != nil {
		return core.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(query.Password)) != nil {
		return core.User{}, core.ErrInvalidCredentials
	}

	return user, nil
}
