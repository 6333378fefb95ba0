package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/testutil/testdoubles"
)

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	// act
	meta, err := RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, time.Duration(0), meta.TotalDelay)
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_RetryOnSerializationConflict(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return recordstore.ErrSerializationConflict
		}
		return nil
	}

	// act
	meta, err := RetryWithExponentialBackoff(context.Background(), fn, WithBaseDelay(time.Millisecond))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Greater(t, meta.TotalDelay, time.Duration(0))
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_NonRetryableErrorFailsFast(t *testing.T) {
	// arrange
	callCount := 0
	boom := errors.New("boom")
	fn := func(_ context.Context) error {
		callCount++
		return boom
	}

	// act
	meta, err := RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "other", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_RetriesExhausted(t *testing.T) {
	// arrange
	metricsCollector := testdoubles.NewMetricsCollectorSpy(true)
	fn := func(_ context.Context) error {
		return errors.Join(recordstore.ErrSerializationConflict, errors.New("40001"))
	}

	// act
	meta, err := RetryWithExponentialBackoff(
		context.Background(),
		fn,
		WithMaxAttempts(3),
		WithBaseDelay(time.Millisecond),
		WithJitterFactor(0),
		WithRetryMetrics(metricsCollector, "CreateLoan"),
	)

	// assert
	assert.ErrorIs(t, err, recordstore.ErrSerializationConflict)
	assert.Equal(t, 3, meta.Attempts)
	assert.True(t, meta.RetriesExhausted)
	assert.Equal(t, "serialization_conflict", meta.LastErrorType)
	assert.Equal(t, 3*time.Millisecond, meta.TotalDelay)
	assert.True(t, metricsCollector.HasCounter(CommandHandlerRetriesMetric, map[string]string{"attempt_number": "1"}))
	assert.True(t, metricsCollector.HasCounter(CommandHandlerRetriesMetric, map[string]string{"attempt_number": "2"}))
	assert.False(t, metricsCollector.HasCounter(CommandHandlerRetriesMetric, map[string]string{"attempt_number": "3"}))
	assert.True(t, metricsCollector.HasCounter(CommandHandlerMaxRetriesReachedMetric, map[string]string{LogAttrCommandType: "CreateLoan"}))
	assert.True(t, metricsCollector.HasDuration(CommandHandlerRetryDelayMetric, map[string]string{"attempt_number": "2"}))
}

func Test_RetryWithExponentialBackoff_ContextCanceledDuringBackoff(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(_ context.Context) error {
		cancel()
		return recordstore.ErrSerializationConflict
	}

	// act
	meta, err := RetryWithExponentialBackoff(ctx, fn, WithBaseDelay(time.Second))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, "context_canceled", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	fn := func(_ context.Context) error { return nil }

	testCases := []struct {
		name     string
		option   RetryOption
		expected error
	}{
		{"zero max attempts", WithMaxAttempts(0), ErrInvalidMaxAttempts},
		{"negative base delay", WithBaseDelay(-time.Millisecond), ErrNegativeBaseDelay},
		{"jitter above one", WithJitterFactor(1.5), ErrInvalidJitterFactor},
		{"nil metrics collector", WithRetryMetrics(nil, "CreateLoan"), ErrNilMetricsCollector},
		{"empty command type", WithRetryMetrics(testdoubles.NewMetricsCollectorSpy(false), ""), ErrEmptyCommandType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RetryWithExponentialBackoff(context.Background(), fn, tc.option)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func Test_getErrorType(t *testing.T) {
	assert.Equal(t, "none", getErrorType(nil))
	assert.Equal(t, "serialization_conflict", getErrorType(recordstore.ErrSerializationConflict))
	assert.Equal(t, "context_canceled", getErrorType(context.Canceled))
	assert.Equal(t, "context_deadline_exceeded", getErrorType(context.DeadlineExceeded))
	assert.Equal(t, "other", getErrorType(errors.New("x")))
}
