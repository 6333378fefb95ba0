package shell

import "time"

// HandlerResult represents the outcome of a command handler execution.
// It captures the produced value, the business outcome (idempotency) and execution metadata
// (retry information) without coupling the handler to specific observability implementations.
type HandlerResult[R any] struct {
	// Value is what the command produced, e.g. the persisted entity or its read view.
	Value R

	// Idempotent indicates whether the operation was idempotent (no state change needed).
	// This is a first-class business outcome, not an error condition.
	Idempotent bool

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none" (success), "serialization_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for successful operations (non-idempotent).
func NewSuccessResult[R any](value R, retryMetrics RetryMetrics) HandlerResult[R] {
	return newResult(value, false, retryMetrics)
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult[R any](value R, retryMetrics RetryMetrics) HandlerResult[R] {
	return newResult(value, true, retryMetrics)
}

// NewErrorResult creates a HandlerResult for failed operations.
// This is used when the handler returns an error but still wants to report retry metadata.
func NewErrorResult[R any](retryMetrics RetryMetrics) HandlerResult[R] {
	var zero R
	return newResult(zero, false, retryMetrics)
}

func newResult[R any](value R, idempotent bool, retryMetrics RetryMetrics) HandlerResult[R] {
	return HandlerResult[R]{
		Value:            value,
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
