package recordstore

import "context"

// IsolationLevel defines the transaction isolation a unit of work runs with.
type IsolationLevel int

const (
	// Serializable is the default. Read-check-write use cases such as lending a book depend on it,
	// conflicting units of work fail with ErrSerializationConflict and can be retried.
	Serializable IsolationLevel = iota

	// ReadCommitted is sufficient for pure read use cases that tolerate a non-repeatable snapshot.
	ReadCommitted
)

type contextKey string

// IsolationLevelKey is the context key used to store the isolation level preference.
const IsolationLevelKey contextKey = "recordstore.isolation_level"

// WithSerializable returns a context that makes Engine.Begin open a serializable unit of work.
func WithSerializable(ctx context.Context) context.Context {
	return context.WithValue(ctx, IsolationLevelKey, Serializable)
}

// WithReadCommitted returns a context that makes Engine.Begin open a read committed unit of work.
//
// Example usage:
//
//	ctx = recordstore.WithReadCommitted(ctx)
//	uow, err := engine.Begin(ctx)
func WithReadCommitted(ctx context.Context) context.Context {
	return context.WithValue(ctx, IsolationLevelKey, ReadCommitted)
}

// GetIsolationLevel extracts the isolation level from the context, defaulting to Serializable.
func GetIsolationLevel(ctx context.Context) IsolationLevel {
	if level, ok := ctx.Value(IsolationLevelKey).(IsolationLevel); ok {
		return level
	}

	return Serializable
}

func (l IsolationLevel) String() string {
	switch l {
	case Serializable:
		return "serializable"
	case ReadCommitted:
		return "read_committed"
	default:
		return "unknown"
	}
}
