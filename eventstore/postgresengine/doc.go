// Package postgresengine provides a PostgreSQL implementation of the domain event log.
//
// Events are appended with a single multi-row INSERT, so a batch is stored completely or not at all.
// Appending an event whose event_id is already stored is a no-op, which makes re-delivery harmless.
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(db)
//
//	// With logging, metrics and tracing
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		db,
//		postgresengine.WithTableName("domain_events"),
//		postgresengine.WithContextualLogger(logger),
//		postgresengine.WithMetrics(collector),
//		postgresengine.WithTracing(tracer),
//	)
//
//	err := store.Append(ctx, event)
//	events, _ := store.Query(ctx, filter)
package postgresengine
