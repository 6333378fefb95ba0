package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/eventstore"
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/testutil/testdoubles"
)

type streamAdderFake struct {
	args []*redis.XAddArgs
	err  error
}

func (f *streamAdderFake) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1700000000000-0", f.err)
}

type eventAppenderFake struct {
	appended []eventstore.StorableEvent
}

func (f *eventAppenderFake) Append(_ context.Context, event eventstore.StorableEvent, events ...eventstore.StorableEvent) error {
	f.appended = append(f.appended, event)
	f.appended = append(f.appended, events...)

	return nil
}

func loanCreatedEnvelope() shell.EventEnvelope {
	loanDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	loan := core.Loan{ID: uuid.New(), BookID: uuid.New(), BorrowerID: uuid.New(), LoanDate: loanDate, CreatedAt: loanDate, UpdatedAt: loanDate}

	return shell.EventEnvelope{
		Event:    core.BuildLoanCreated(loan, loanDate),
		Metadata: shell.EventMetadata{CorrelationID: "corr-1", CausationID: "corr-1"},
	}
}

func Test_LogSink_LogsEventRecord(t *testing.T) {
	// arrange
	logSpy := testdoubles.NewLogHandlerSpy(false)
	sink := shell.NewLogSink(logSpy.Logger())
	envelope := loanCreatedEnvelope()

	// act
	err := sink.Deliver(context.Background(), envelope)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "log", sink.Name())
	assert.True(t, logSpy.HasAttr("domain event", "event_type", core.LoanCreatedEventType))
	assert.True(t, logSpy.HasAttr("domain event", "aggregate_id", envelope.Event.AggregateID.String()))
	assert.True(t, logSpy.HasAttr("domain event", "correlation_id", "corr-1"))
}

func Test_EventStoreSink_AppendsStorableEvent(t *testing.T) {
	// arrange
	appender := &eventAppenderFake{}
	sink := shell.NewEventStoreSink(appender)
	envelope := loanCreatedEnvelope()

	// act
	err := sink.Deliver(context.Background(), envelope)

	// assert
	require.NoError(t, err)
	require.Len(t, appender.appended, 1)
	stored := appender.appended[0]
	assert.Equal(t, envelope.Event.EventID, stored.EventID)
	assert.Equal(t, core.LoanCreatedEventType, stored.EventType)
	assert.Equal(t, core.LoanAggregateType, stored.AggregateType)
	assert.Equal(t, envelope.Event.AggregateID.String(), stored.AggregateID)

	metadata, err := shell.EventMetadataFrom(stored)
	assert.NoError(t, err)
	assert.Equal(t, envelope.Metadata, metadata)

	payload := map[string]any{}
	require.NoError(t, jsoniter.Unmarshal(stored.PayloadJSON, &payload))
	assert.Equal(t, "2024-01-10T00:00:00Z", payload["loan_date"])
	assert.Nil(t, payload["return_date"])
}

func Test_RedisStreamSink_AddsStreamEntry(t *testing.T) {
	// arrange
	client := &streamAdderFake{}
	sink, err := shell.NewRedisStreamSink(client, "library-events")
	require.NoError(t, err)
	envelope := loanCreatedEnvelope()

	// act
	err = sink.Deliver(context.Background(), envelope)

	// assert
	require.NoError(t, err)
	require.Len(t, client.args, 1)
	args := client.args[0]
	assert.Equal(t, "library-events", args.Stream)
	assert.True(t, args.Approx)
	assert.Positive(t, args.MaxLen)

	values, ok := args.Values.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, core.LoanCreatedEventType, values["event_type"])
	assert.Equal(t, envelope.Event.EventID.String(), values["event_id"])

	record := map[string]any{}
	require.NoError(t, jsoniter.UnmarshalFromString(values["record"].(string), &record))
	assert.Equal(t, core.LoanCreatedEventType, record["event_type"])
	assert.Equal(t, "loan", record["aggregate_type"])
	assert.Contains(t, record, "data")
}

func Test_RedisStreamSink_PropagatesClientError(t *testing.T) {
	// arrange
	client := &streamAdderFake{err: errors.New("connection refused")}
	sink, err := shell.NewRedisStreamSink(client, "library-events")
	require.NoError(t, err)

	// act
	err = sink.Deliver(context.Background(), loanCreatedEnvelope())

	// assert
	assert.EqualError(t, err, "connection refused")
}

func Test_NewRedisStreamSink_EmptyStream(t *testing.T) {
	_, err := shell.NewRedisStreamSink(&streamAdderFake{}, " ")
	assert.ErrorIs(t, err, shell.ErrEmptyStreamName)
}

func Test_MultiSink_DeliversToAllAndJoinsErrors(t *testing.T) {
	// arrange
	failing := newSinkSpy("failing")
	failing.err = errors.New("down")
	healthy := newSinkSpy("healthy")
	sink := shell.NewMultiSink(failing, healthy)

	// act
	err := sink.Deliver(context.Background(), loanCreatedEnvelope())

	// assert
	assert.Equal(t, "failing+healthy", sink.Name())
	assert.ErrorContains(t, err, "down")
	assert.Len(t, failing.Delivered(), 1)
	assert.Len(t, healthy.Delivered(), 1)
}
