// Package eventstore provides the types of the append-only domain event log.
//
// Every domain event that leaves a committed unit of work can be recorded as a StorableEvent.
// Events are never updated or deleted, they are only appended and queried back in the order
// they were appended.
//
// The log can be filtered by:
//   - Event types
//   - Aggregate type and aggregate id
//   - Time ranges (occurred from/until)
//   - Sequence number, for consumers that resume where they left off
//
// Key types:
//   - Filter: Defines criteria for querying events
//   - StorableEvent: Represents an event that can be stored
//   - StoredEvent: A StorableEvent together with its position in the log
//
// Common usage pattern:
//
//	filter := BuildEventFilter().
//		OfEventTypes("loan.created", "loan.returned").
//		ForAggregate("loan", loanID.String()).
//		Finalize()
//
//	events, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
package eventstore
