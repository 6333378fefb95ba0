package postgresengine

import (
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithLogger sets the logger for the Engine.
//
// Debug level: SQL statements with execution timing
// Info level: unit of work outcomes
// Warn level: cleanup failures
// Error level: failures that abort an operation.
func WithLogger(logger recordstore.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, it takes precedence over WithLogger.
func WithContextualLogger(logger recordstore.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for statement durations, errors and unit of work outcomes.
func WithMetrics(collector recordstore.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}
