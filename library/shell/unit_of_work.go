package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// ErrNilEngine is returned when no record store engine was configured.
var ErrNilEngine = errors.New("record store engine must not be nil")

// Work is the body of one unit of work. It returns the domain events to publish once the
// unit of work has committed.
type Work func(ctx context.Context, session recordstore.Session) (core.DomainEvents, error)

// RunInUnitOfWork runs work in a fresh unit of work, commits it and then hands the staged events
// to publisher. Any error rolls the unit of work back and nothing is published.
//
// Serialization conflicts re-run work from the start in a new unit of work, see RetryWithExponentialBackoff.
func RunInUnitOfWork(
	ctx context.Context,
	engine recordstore.Engine,
	publisher Publisher,
	work Work,
	options ...RetryOption,
) (RetryMetrics, error) {

	if engine == nil {
		return RetryMetrics{}, ErrNilEngine
	}

	var staged core.DomainEvents

	metrics, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		events, runErr := runOnce(retryCtx, engine, work)
		staged = events

		return runErr
	}, options...)

	if err != nil {
		return metrics, err
	}

	if publisher != nil && len(staged) > 0 {
		publisher.Publish(ctx, staged...)
	}

	return metrics, nil
}

// ReadInUnitOfWork runs a read-only body in its own unit of work, no retry, nothing to publish.
func ReadInUnitOfWork[R any](
	ctx context.Context,
	engine recordstore.Engine,
	read func(ctx context.Context, session recordstore.Session) (R, error),
) (R, error) {

	var empty R

	if engine == nil {
		return empty, ErrNilEngine
	}

	ctx = recordstore.WithReadCommitted(ctx)

	uow, err := engine.Begin(ctx)
	if err != nil {
		return empty, err
	}
	defer rollback(ctx, uow)

	result, err := read(ctx, uow)
	if err != nil {
		return empty, err
	}

	if err = uow.Commit(ctx); err != nil {
		return empty, err
	}

	return result, nil
}

func runOnce(ctx context.Context, engine recordstore.Engine, work Work) (core.DomainEvents, error) {
	uow, err := engine.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, uow)

	events, err := work(ctx, uow)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return events, nil
}

// rollback is deferred on every exit path, it is a no-op after a successful commit.
// It must still run when the request context is already canceled.
func rollback(ctx context.Context, uow recordstore.UnitOfWork) {
	_ = uow.Rollback(context.WithoutCancel(ctx))
}
