package postgresengine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	metricStatementDuration = "recordstore_statement_duration_seconds"
	metricDatabaseErrors    = "recordstore_database_errors_total"
	metricUnitsOfWork       = "recordstore_units_of_work_total"
	labelAction             = "action"
	labelErrorType          = "error_type"
	labelOutcome            = "outcome"
	outcomeCommitted        = "committed"
	outcomeRolledBack       = "rolled_back"
	outcomeCommitFailed     = "commit_failed"
	actionBegin             = "begin"
	actionCommit            = "commit"
	actionRollback          = "rollback"
)

func (e *Engine) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	} else if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

func (e *Engine) logOperation(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, msg, args...)
	} else if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

func (e *Engine) logWarning(ctx context.Context, msg string, err error) {
	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, msg, logAttrError, err.Error())
	} else if e.logger != nil {
		e.logger.Warn(msg, logAttrError, err.Error())
	}
}

func (e *Engine) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	} else if e.logger != nil {
		e.logger.Error(msg, allArgs...)
	}
}

func (e *Engine) recordDuration(ctx context.Context, action string, duration time.Duration) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelAction: action}

	if contextual, ok := e.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricStatementDuration, duration, labels)
	} else {
		e.metricsCollector.RecordDuration(metricStatementDuration, duration, labels)
	}
}

func (e *Engine) recordError(ctx context.Context, action string, err error) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelAction: action, labelErrorType: errorType(err)}

	if contextual, ok := e.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		e.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

func (e *Engine) recordOutcome(ctx context.Context, outcome string) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOutcome: outcome}

	if contextual, ok := e.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricUnitsOfWork, labels)
	} else {
		e.metricsCollector.IncrementCounter(metricUnitsOfWork, labels)
	}
}

// errorType maps an error to a low-cardinality metrics label.
func errorType(err error) string {
	switch {
	case errors.Is(err, recordstore.ErrActiveLoanConflict):
		return "active_loan_conflict"
	case errors.Is(err, recordstore.ErrUniqueViolation):
		return "unique_violation"
	case errors.Is(err, recordstore.ErrForeignKeyViolation):
		return "foreign_key_violation"
	case errors.Is(err, recordstore.ErrCheckViolation):
		return "check_violation"
	case errors.Is(err, recordstore.ErrSerializationConflict):
		return "serialization_conflict"
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "context_deadline_exceeded"
	default:
		return "other"
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
