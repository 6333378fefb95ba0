package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

// IsDomainError reports whether err is an expected business rejection rather than a fault.
func IsDomainError(err error) bool {
	return errors.Is(err, core.ErrNotFound) ||
		errors.Is(err, core.ErrValidation) ||
		errors.Is(err, core.ErrAlreadyBorrowed) ||
		errors.Is(err, core.ErrActiveLoanExists) ||
		errors.Is(err, core.ErrEmailAlreadyExists) ||
		errors.Is(err, core.ErrAuthorHasBooks) ||
		errors.Is(err, core.ErrUsernameAlreadyExists) ||
		errors.Is(err, core.ErrInvalidCredentials)
}
