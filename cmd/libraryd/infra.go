package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	eventstorepg "github.com/AntonStoeckl/library-records-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/library/shell/config"
	"github.com/AntonStoeckl/library-records-go/library/shell/oteladapters"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

var errNoEventSink = errors.New("at least one event sink must be configured")

// storage bundles everything opened on the database, Close releases it.
type storage struct {
	engine recordstore.Engine
	events *eventstorepg.EventStore
	close  func()
}

func newLogger(cfg config.Config) *slog.Logger {
	local := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})

	if cfg.OTELEnabled {
		return oteladapters.NewBridgedLogger(serviceName, local)
	}

	return slog.New(oteladapters.NewTraceCorrelatingHandler(local))
}

func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger, metrics shell.MetricsCollector) (storage, error) {
	engineOptions := []postgresengine.Option{
		postgresengine.WithContextualLogger(logger),
	}

	eventStoreOptions := []eventstorepg.Option{
		eventstorepg.WithContextualLogger(logger),
	}

	if metrics != nil {
		engineOptions = append(engineOptions, postgresengine.WithMetrics(metrics))
		eventStoreOptions = append(eventStoreOptions, eventstorepg.WithMetrics(metrics))
	}

	switch cfg.DatabaseDriver {
	case config.DriverSQL:
		db, err := config.NewSQLDB(ctx, cfg)
		if err != nil {
			return storage{}, err
		}

		engine, err := postgresengine.NewEngineFromSQLDB(db, engineOptions...)
		if err != nil {
			_ = db.Close()
			return storage{}, err
		}

		events, err := eventstorepg.NewEventStoreFromSQLDB(db, eventStoreOptions...)
		if err != nil {
			_ = db.Close()
			return storage{}, err
		}

		return storage{engine: engine, events: events, close: func() { _ = db.Close() }}, nil

	case config.DriverSQLX:
		db, err := config.NewSQLX(ctx, cfg)
		if err != nil {
			return storage{}, err
		}

		engine, err := postgresengine.NewEngineFromSQLX(db, engineOptions...)
		if err != nil {
			_ = db.Close()
			return storage{}, err
		}

		events, err := eventstorepg.NewEventStoreFromSQLX(db, eventStoreOptions...)
		if err != nil {
			_ = db.Close()
			return storage{}, err
		}

		return storage{engine: engine, events: events, close: func() { _ = db.Close() }}, nil

	default:
		pool, err := config.NewPGXPool(ctx, cfg)
		if err != nil {
			return storage{}, err
		}

		engine, err := postgresengine.NewEngineFromPGXPool(pool, engineOptions...)
		if err != nil {
			pool.Close()
			return storage{}, err
		}

		events, err := eventstorepg.NewEventStoreFromPGXPool(pool, eventStoreOptions...)
		if err != nil {
			pool.Close()
			return storage{}, err
		}

		return storage{engine: engine, events: events, close: pool.Close}, nil
	}
}

// newEventSink combines the configured sinks, the returned func releases the Redis connection if one was opened.
func newEventSink(ctx context.Context, cfg config.Config, logger *slog.Logger, events shell.EventAppender) (shell.EventSink, func(), error) {
	var sinks []shell.EventSink
	release := func() {}

	for _, name := range cfg.EventSinkNames() {
		switch name {
		case config.SinkLog:
			sinks = append(sinks, shell.NewLogSink(logger))

		case config.SinkPostgres:
			sinks = append(sinks, shell.NewEventStoreSink(events))

		case config.SinkRedis:
			client, err := config.NewRedisClient(ctx, cfg)
			if err != nil {
				return nil, nil, err
			}

			sink, err := shell.NewRedisStreamSink(client, cfg.RedisStream)
			if err != nil {
				_ = client.Close()
				return nil, nil, err
			}

			sinks = append(sinks, sink)
			release = func() { _ = client.Close() }
		}
	}

	if len(sinks) == 0 {
		return nil, nil, errNoEventSink
	}

	if len(sinks) == 1 {
		return sinks[0], release, nil
	}

	return shell.NewMultiSink(sinks...), release, nil
}
