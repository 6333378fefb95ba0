package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

var (
	ErrMissingAPIKey    = errors.New("api key must not be empty")
	ErrMissingJWTSecret = errors.New("jwt secret must not be empty")
	ErrNilUseCase       = errors.New("all use case handlers must be set")
)

var (
	errInvalidID          = fmt.Errorf("%w: id is not a valid uuid", core.ErrValidation)
	errInvalidRequestBody = fmt.Errorf("%w: request body is not valid json", core.ErrValidation)
)

const (
	detailIntegrityViolation = "integrity constraint violated"
	detailConflict           = "the request conflicted with a concurrent change, please retry"
	detailInternal           = "internal server error"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

// statusFor maps domain and store errors to HTTP status codes. Only this boundary knows about HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, core.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, core.ErrAlreadyBorrowed),
		errors.Is(err, core.ErrActiveLoanExists),
		errors.Is(err, core.ErrEmailAlreadyExists),
		errors.Is(err, core.ErrAuthorHasBooks),
		errors.Is(err, core.ErrUsernameAlreadyExists):

		return http.StatusConflict, err.Error()

	case recordstore.IsConstraintViolation(err):
		return http.StatusConflict, detailIntegrityViolation

	case shell.IsConcurrencyConflictError(err):
		return http.StatusConflict, detailConflict

	default:
		return http.StatusInternalServerError, detailInternal
	}
}
