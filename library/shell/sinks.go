package shell

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/AntonStoeckl/library-records-go/eventstore"
)

const (
	logMsgDomainEvent   = "domain event"
	logAttrOccurredAt   = "occurred_at"
	logAttrAggregate    = "aggregate_type"
	logAttrData         = "data"
	logAttrCorrelation  = "correlation_id"
	sinkNameLog         = "log"
	sinkNameEventStore  = "postgres"
	sinkNameRedisStream = "redis"
	defaultStreamMaxLen = 100000
)

// ErrEmptyStreamName is returned when a RedisStreamSink is created without a stream name.
var ErrEmptyStreamName = errors.New("redis stream name must not be empty")

/*** LogSink ***/

// LogSink writes every event as one structured log record at info level.
type LogSink struct {
	logger ContextualLogger
}

// NewLogSink creates a LogSink. A *slog.Logger satisfies ContextualLogger.
func NewLogSink(logger ContextualLogger) LogSink {
	return LogSink{logger: logger}
}

func (s LogSink) Name() string {
	return sinkNameLog
}

func (s LogSink) Deliver(ctx context.Context, envelope EventEnvelope) error {
	data, err := EventRecordJSON(envelope.Event)
	if err != nil {
		return err
	}

	s.logger.InfoContext(
		ctx, logMsgDomainEvent,
		logAttrEventID, envelope.Event.EventID.String(),
		logAttrEventType, envelope.Event.EventType,
		logAttrAggregate, envelope.Event.AggregateType,
		logAttrAggregateID, envelope.Event.AggregateID.String(),
		logAttrOccurredAt, envelope.Event.OccurredAt.Format(time.RFC3339Nano),
		logAttrCorrelation, envelope.Metadata.CorrelationID,
		logAttrData, string(data),
	)

	return nil
}

/*** EventStoreSink ***/

// EventAppender is the part of the event store the EventStoreSink needs.
type EventAppender interface {
	Append(ctx context.Context, event eventstore.StorableEvent, events ...eventstore.StorableEvent) error
}

// EventStoreSink appends every event to the domain event log.
type EventStoreSink struct {
	store EventAppender
}

func NewEventStoreSink(store EventAppender) EventStoreSink {
	return EventStoreSink{store: store}
}

func (s EventStoreSink) Name() string {
	return sinkNameEventStore
}

func (s EventStoreSink) Deliver(ctx context.Context, envelope EventEnvelope) error {
	storableEvent, err := StorableEventFrom(envelope)
	if err != nil {
		return err
	}

	return s.store.Append(ctx, storableEvent)
}

/*** RedisStreamSink ***/

// StreamAdder is the part of a go-redis client the RedisStreamSink needs.
// *redis.Client and *redis.ClusterClient satisfy it.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamSink adds every event as one entry to a Redis stream, trimmed approximately to maxLen.
type RedisStreamSink struct {
	client StreamAdder
	stream string
	maxLen int64
}

// NewRedisStreamSink creates a RedisStreamSink for the given stream.
func NewRedisStreamSink(client StreamAdder, stream string) (RedisStreamSink, error) {
	if strings.TrimSpace(stream) == "" {
		return RedisStreamSink{}, ErrEmptyStreamName
	}

	return RedisStreamSink{client: client, stream: stream, maxLen: defaultStreamMaxLen}, nil
}

func (s RedisStreamSink) Name() string {
	return sinkNameRedisStream
}

func (s RedisStreamSink) Deliver(ctx context.Context, envelope EventEnvelope) error {
	data, err := EventRecordJSON(envelope.Event)
	if err != nil {
		return err
	}

	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{
			logAttrEventID:     envelope.Event.EventID.String(),
			logAttrEventType:   envelope.Event.EventType,
			logAttrAggregate:   envelope.Event.AggregateType,
			logAttrAggregateID: envelope.Event.AggregateID.String(),
			logAttrOccurredAt:  envelope.Event.OccurredAt.Format(time.RFC3339Nano),
			logAttrCorrelation: envelope.Metadata.CorrelationID,
			"record":           string(data),
		},
	}).Err()
}

/*** MultiSink ***/

// MultiSink delivers every event to all of its sinks, a failing sink does not stop the others.
type MultiSink struct {
	sinks []EventSink
}

func NewMultiSink(sinks ...EventSink) MultiSink {
	return MultiSink{sinks: sinks}
}

func (s MultiSink) Name() string {
	names := make([]string, 0, len(s.sinks))
	for _, sink := range s.sinks {
		names = append(names, sink.Name())
	}

	return strings.Join(names, "+")
}

func (s MultiSink) Deliver(ctx context.Context, envelope EventEnvelope) error {
	var errs []error

	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, envelope); err != nil {
			errs = append(errs, errors.Join(errors.New(sink.Name()), err))
		}
	}

	return errors.Join(errs...)
}
