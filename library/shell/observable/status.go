package observable

import (
	"github.com/AntonStoeckl/library-records-go/library/shell"
)

// errorStatus maps a handler error to the status label used for metrics and spans.
func errorStatus(err error) string {
	switch {
	case shell.IsCancellationError(err):
		return shell.StatusCanceled
	case shell.IsTimeoutError(err):
		return shell.StatusTimeout
	case shell.IsConcurrencyConflictError(err):
		return shell.StatusConcurrencyConflict
	default:
		return shell.StatusError
	}
}
