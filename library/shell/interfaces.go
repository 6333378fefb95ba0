package shell

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// Interface aliases, so that features and wrappers only need to import shell.

// MetricsCollector interface for collecting handler and emitter metrics.
type MetricsCollector = recordstore.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = recordstore.ContextualMetricsCollector

// TracingCollector interface for distributed tracing in handlers.
type TracingCollector = recordstore.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = recordstore.SpanContext

// ContextualLogger interface for context-aware logging.
type ContextualLogger = recordstore.ContextualLogger

// Logger interface for basic logging.
type Logger = recordstore.Logger

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CommandHandler defines the contract for components that process commands.
// Handlers return a HandlerResult carrying the produced value, the business outcome (idempotency)
// and the retry metadata.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (HandlerResult[R], error)
}

// QueryHandler defines the contract for components that process queries and return read views.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Publisher hands committed domain events over for delivery. It never blocks and never fails.
type Publisher interface {
	Publish(ctx context.Context, events ...core.DomainEvent)
}
