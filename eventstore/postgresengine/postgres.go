package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-records-go/eventstore"
	"github.com/AntonStoeckl/library-records-go/internal/adapters"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	defaultEventTableName        = "domain_events"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed during event append"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgQueryCompleted         = "query completed"
	logMsgEventsAppended         = "events appended"
	logMsgSQLExecuted            = "executed sql for: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrEventCount            = "event_count"
	logAttrRowsAffected          = "rows_affected"
	logAttrDurationMS            = "duration_ms"
	logActionQuery               = "query"
	logActionAppend              = "append"
	colSequenceNumber            = "sequence_number"
	colEventID                   = "event_id"
	colEventType                 = "event_type"
	colAggregateType             = "aggregate_type"
	colAggregateID               = "aggregate_id"
	colOccurredAt                = "occurred_at"
	colPayload                   = "payload"
	colMetadata                  = "metadata"
	dialectPostgres              = "postgres"
)

// EventStore appends domain events to and queries them from a PostgreSQL table.
type EventStore struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           recordstore.Logger
	contextualLogger recordstore.ContextualLogger
	metricsCollector recordstore.MetricsCollector
	tracingCollector recordstore.TracingCollector
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Append stores the given events atomically, in the given order.
// Events whose EventID is already stored are skipped.
func (es *EventStore) Append(ctx context.Context, event eventstore.StorableEvent, events ...eventstore.StorableEvent) error {
	allEvents := append([]eventstore.StorableEvent{event}, events...)

	ctx, span := es.startSpan(ctx, logActionAppend, map[string]string{logAttrEventCount: strconv.Itoa(len(allEvents))})

	rows := make([]any, 0, len(allEvents))
	for _, e := range allEvents {
		rows = append(rows, goqu.Record{
			colEventID:       e.EventID.String(),
			colEventType:     e.EventType,
			colAggregateType: e.AggregateType,
			colAggregateID:   e.AggregateID,
			colOccurredAt:    e.OccurredAt,
			colPayload:       string(e.PayloadJSON),
			colMetadata:      string(e.MetadataJSON),
		})
	}

	sqlQuery, args, buildErr := goqu.Dialect(dialectPostgres).
		Insert(es.eventTableName).
		Prepared(true).
		Rows(rows...).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if buildErr != nil {
		es.logError(ctx, logMsgBuildInsertQueryFailed, buildErr)
		es.finishSpan(span, buildErr)

		return errors.Join(eventstore.ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	result, execErr := es.db.Exec(ctx, sqlQuery, args...)
	duration := time.Since(start)
	es.logQueryWithDuration(ctx, sqlQuery, logActionAppend, duration)
	es.recordDuration(ctx, logActionAppend, duration)

	if execErr != nil {
		es.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		es.recordError(ctx, logActionAppend, execErr)
		es.finishSpan(span, execErr)

		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	var rowsAffected int64
	if result != nil {
		rowsAffected, _ = result.RowsAffected()
	}

	es.logOperation(ctx, logMsgEventsAppended, logAttrEventCount, len(allEvents), logAttrRowsAffected, rowsAffected)
	es.recordValue(ctx, metricEventsAppended, float64(rowsAffected))
	es.finishSpan(span, nil)

	return nil
}

// Query returns all events matching filter, ordered by sequence number.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (eventstore.StoredEvents, error) {
	ctx, span := es.startSpan(ctx, logActionQuery, nil)

	sqlQuery, args, buildErr := es.buildSelectQuery(filter)
	if buildErr != nil {
		es.logError(ctx, logMsgBuildSelectQueryFailed, buildErr)
		es.finishSpan(span, buildErr)

		return nil, errors.Join(eventstore.ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery, args...)
	duration := time.Since(start)
	es.logQueryWithDuration(ctx, sqlQuery, logActionQuery, duration)
	es.recordDuration(ctx, logActionQuery, duration)

	if queryErr != nil {
		es.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		es.recordError(ctx, logActionQuery, queryErr)
		es.finishSpan(span, queryErr)

		return nil, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(ctx, rows)

	events := make(eventstore.StoredEvents, 0)

	for rows.Next() {
		event, scanErr := scanStoredEvent(rows)
		if scanErr != nil {
			es.logError(ctx, logMsgScanRowFailed, scanErr)
			es.finishSpan(span, scanErr)

			return nil, errors.Join(eventstore.ErrScanningDBRowFailed, scanErr)
		}

		events = append(events, event)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		es.logError(ctx, logMsgDBQueryFailed, rowsErr, logAttrQuery, sqlQuery)
		es.finishSpan(span, rowsErr)

		return nil, errors.Join(eventstore.ErrQueryingEventsFailed, rowsErr)
	}

	es.logOperation(ctx, logMsgQueryCompleted, logAttrEventCount, len(events), logAttrDurationMS, toMilliseconds(duration))
	es.finishSpan(span, nil)

	return events, nil
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (string, []any, error) {
	where := make([]exp.Expression, 0)

	if len(filter.EventTypes()) > 0 {
		where = append(where, goqu.C(colEventType).In(filter.EventTypes()))
	}

	if filter.AggregateType() != "" {
		where = append(where, goqu.C(colAggregateType).Eq(filter.AggregateType()))
	}

	if filter.AggregateID() != "" {
		where = append(where, goqu.C(colAggregateID).Eq(filter.AggregateID()))
	}

	if !filter.OccurredFrom().IsZero() {
		where = append(where, goqu.C(colOccurredAt).Gte(filter.OccurredFrom()))
	}

	if !filter.OccurredUntil().IsZero() {
		where = append(where, goqu.C(colOccurredAt).Lte(filter.OccurredUntil()))
	}

	if filter.AfterSequence() > 0 {
		where = append(where, goqu.C(colSequenceNumber).Gt(filter.AfterSequence()))
	}

	stmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Prepared(true).
		Select(
			colSequenceNumber,
			colEventID,
			colEventType,
			colAggregateType,
			colAggregateID,
			colOccurredAt,
			colPayload,
			colMetadata,
		).
		Where(where...).
		Order(goqu.C(colSequenceNumber).Asc())

	if filter.Limit() > 0 {
		stmt = stmt.Limit(filter.Limit())
	}

	return stmt.ToSQL()
}

func scanStoredEvent(rows adapters.DBRows) (eventstore.StoredEvent, error) {
	var (
		sequenceNumber int64
		eventID        string
		event          eventstore.StoredEvent
	)

	err := rows.Scan(
		&sequenceNumber,
		&eventID,
		&event.EventType,
		&event.AggregateType,
		&event.AggregateID,
		&event.OccurredAt,
		&event.PayloadJSON,
		&event.MetadataJSON,
	)
	if err != nil {
		return eventstore.StoredEvent{}, err
	}

	parsedID, err := uuid.Parse(eventID)
	if err != nil {
		return eventstore.StoredEvent{}, err
	}

	event.EventID = parsedID
	event.SequenceNumber = eventstore.SequenceNumberUint(sequenceNumber)
	event.OccurredAt = event.OccurredAt.UTC()

	return event, nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		es.logWarning(ctx, logMsgCloseRowsFailed, err)
	}
}
