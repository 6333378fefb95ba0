package postgresengine

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	spanNamePrefix       = "eventstore."
	metricQueryDuration  = "eventstore_query_duration_seconds"
	metricDatabaseErrors = "eventstore_database_errors_total"
	metricEventsAppended = "eventstore_events_appended"
	labelOperation       = "operation"
	spanStatusOK         = "ok"
	spanStatusError      = "error"
)

func (es *EventStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if es.contextualLogger != nil {
		es.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	} else if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

func (es *EventStore) logOperation(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, msg, args...)
	} else if es.logger != nil {
		es.logger.Info(msg, args...)
	}
}

func (es *EventStore) logWarning(ctx context.Context, msg string, err error) {
	if es.contextualLogger != nil {
		es.contextualLogger.WarnContext(ctx, msg, logAttrError, err.Error())
	} else if es.logger != nil {
		es.logger.Warn(msg, logAttrError, err.Error())
	}
}

func (es *EventStore) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	} else if es.logger != nil {
		es.logger.Error(msg, allArgs...)
	}
}

func (es *EventStore) recordDuration(ctx context.Context, operation string, duration time.Duration) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: operation}

	if contextual, ok := es.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricQueryDuration, duration, labels)
	} else {
		es.metricsCollector.RecordDuration(metricQueryDuration, duration, labels)
	}
}

func (es *EventStore) recordError(ctx context.Context, operation string, _ error) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: operation}

	if contextual, ok := es.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		es.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

func (es *EventStore) recordValue(ctx context.Context, metric string, value float64) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: logActionAppend}

	if contextual, ok := es.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
	} else {
		es.metricsCollector.RecordValue(metric, value, labels)
	}
}

func (es *EventStore) startSpan(
	ctx context.Context,
	operation string,
	attrs map[string]string,
) (context.Context, recordstore.SpanContext) {

	if es.tracingCollector == nil {
		return ctx, nil
	}

	return es.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, attrs)
}

func (es *EventStore) finishSpan(span recordstore.SpanContext, err error) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	if err != nil {
		es.tracingCollector.FinishSpan(span, spanStatusError, map[string]string{logAttrError: err.Error()})
		return
	}

	es.tracingCollector.FinishSpan(span, spanStatusOK, nil)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
