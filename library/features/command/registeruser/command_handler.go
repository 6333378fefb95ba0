package registeruser

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// ErrHashingPasswordFailed is returned when bcrypt rejects the password, e.g. because it is too long.
var ErrHashingPasswordFailed = errors.New("hashing password failed")

// CommandHandler stores a user with a bcrypt hash of the password.
// Users are not part of the lending domain, no domain event is staged.
type CommandHandler struct {
	deps     shell.Dependencies
	hashCost int
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithHashCost sets the bcrypt cost, the default is bcrypt.DefaultCost.
func WithHashCost(cost int) Option {
	return func(h *CommandHandler) {
		h.hashCost = cost
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(deps shell.Dependencies, opts ...Option) CommandHandler {
	handler := CommandHandler{
		deps:     deps,
		hashCost: bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle registers the user or fails with core.ErrMissingCredentials or core.ErrUsernameAlreadyExists.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[core.User], error) {
	username := strings.TrimSpace(command.Username)
	if username == "" || command.Password == "" {
		return shell.NewErrorResult[core.User](shell.RetryMetrics{}), core.ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(command.Password), h.hashCost)
	if err != nil {
		return shell.NewErrorResult[core.User](shell.RetryMetrics{}), errors.Join(ErrHashingPasswordFailed, err)
	}

	var user core.User

	retryMetrics, err := shell.RunInUnitOfWork(
		ctx,
		h.deps.Engine,
		nil,
		func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error) {
			record, createErr := session.Users().Create(ctx, recordstore.UserRecord{
				Username:     username,
				PasswordHash: string(hash),
			})

			if errors.Is(createErr, recordstore.ErrUniqueViolation) {
				return nil, core.ErrUsernameAlreadyExists
			}

			if createErr != nil {
				return nil, createErr
			}

			user = shell.UserFromRecord(record)

			return nil, nil
		},
		h.deps.RetryOptions...,
	)

	if err != nil {
		return shell.NewErrorResult[core.User](retryMetrics), err
	}

	return shell.NewSuccessResult(user, retryMetrics), nil
}
