package shell

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

const (
	defaultQueueSize       = 1024
	defaultDeliveryTimeout = 5 * time.Second

	logMsgEventDropped        = "domain event dropped"
	logMsgEventDeliveryFailed = "domain event delivery failed"
	logMsgEmitterClosed       = "domain event emitter closed"
	logAttrEventType          = "event_type"
	logAttrEventID            = "event_id"
	logAttrAggregateID        = "aggregate_id"
	logAttrSink               = "sink"
	logAttrReason             = "reason"
	dropReasonQueueFull       = "queue_full"
	dropReasonEmitterClosed   = "emitter_closed"
	deliveryStatusDelivered   = "delivered"
	deliveryStatusFailed      = "failed"
)

var (
	// ErrNilEventSink is returned when NewEmitter is called without a sink.
	ErrNilEventSink = errors.New("event sink must not be nil")

	// ErrInvalidQueueSize is returned when the queue size is not positive.
	ErrInvalidQueueSize = errors.New("queue size must be positive")

	// ErrInvalidDeliveryTimeout is returned when the delivery timeout is not positive.
	ErrInvalidDeliveryTimeout = errors.New("delivery timeout must be positive")
)

// EventSink is an external destination for domain events.
type EventSink interface {
	Name() string
	Deliver(ctx context.Context, envelope EventEnvelope) error
}

// Emitter publishes domain events to a sink from its own goroutine.
//
// Publish never blocks and never fails: when the bounded queue is full the event is dropped and
// logged. Delivery is at-most-once without retry, in publish order.
type Emitter struct {
	sink             EventSink
	queue            chan EventEnvelope
	done             chan struct{}
	queueSize        int
	deliveryTimeout  time.Duration
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// EmitterOption defines a functional option for configuring the Emitter.
type EmitterOption func(*Emitter) error

// WithQueueSize sets the capacity of the publish queue.
func WithQueueSize(size int) EmitterOption {
	return func(e *Emitter) error {
		if size <= 0 {
			return ErrInvalidQueueSize
		}

		e.queueSize = size

		return nil
	}
}

// WithDeliveryTimeout bounds a single Deliver call of the sink.
func WithDeliveryTimeout(timeout time.Duration) EmitterOption {
	return func(e *Emitter) error {
		if timeout <= 0 {
			return ErrInvalidDeliveryTimeout
		}

		e.deliveryTimeout = timeout

		return nil
	}
}

// WithEmitterLogger sets the logger for dropped events and delivery failures.
func WithEmitterLogger(logger Logger) EmitterOption {
	return func(e *Emitter) error {
		e.logger = logger
		return nil
	}
}

// WithEmitterContextualLogger sets a context-aware logger, it takes precedence over WithEmitterLogger.
func WithEmitterContextualLogger(logger ContextualLogger) EmitterOption {
	return func(e *Emitter) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithEmitterMetrics sets the metrics collector for published, dropped and delivered events.
func WithEmitterMetrics(collector MetricsCollector) EmitterOption {
	return func(e *Emitter) error {
		e.metricsCollector = collector
		return nil
	}
}

// NewEmitter creates an Emitter and starts its delivery goroutine. Close must be called to stop it.
func NewEmitter(sink EventSink, options ...EmitterOption) (*Emitter, error) {
	if sink == nil {
		return nil, ErrNilEventSink
	}

	e := &Emitter{
		sink:            sink,
		done:            make(chan struct{}),
		queueSize:       defaultQueueSize,
		deliveryTimeout: defaultDeliveryTimeout,
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	e.queue = make(chan EventEnvelope, e.queueSize)

	go e.run()

	return e, nil
}

// Publish enqueues the events with metadata taken from ctx. It returns immediately.
func (e *Emitter) Publish(ctx context.Context, events ...core.DomainEvent) {
	metadata := EventMetadataFromContext(ctx)

	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, event := range events {
		envelope := EventEnvelope{Event: event, Metadata: metadata}

		if e.closed {
			e.drop(ctx, envelope, dropReasonEmitterClosed)
			continue
		}

		select {
		case e.queue <- envelope:
			RecordEmitterEvent(ctx, e.metricsCollector, EmitterEventsPublishedMetric, event.EventType, nil)
		default:
			e.drop(ctx, envelope, dropReasonQueueFull)
		}
	}
}

// Close stops accepting events and waits until the queued ones are delivered or ctx is done.
func (e *Emitter) Close(ctx context.Context) error {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		close(e.queue)
		e.mu.Unlock()
	})

	select {
	case <-e.done:
		logInfo(ctx, e.logger, e.contextualLogger, logMsgEmitterClosed, logAttrSink, e.sink.Name())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Emitter) run() {
	defer close(e.done)

	for envelope := range e.queue {
		e.deliver(envelope)
	}
}

func (e *Emitter) deliver(envelope EventEnvelope) {
	ctx := WithCorrelationID(context.Background(), envelope.Metadata.CorrelationID)
	ctx, cancel := context.WithTimeout(ctx, e.deliveryTimeout)
	defer cancel()

	labels := map[string]string{logAttrSink: e.sink.Name()}

	if err := e.sink.Deliver(ctx, envelope); err != nil {
		logWarn(
			ctx, e.logger, e.contextualLogger, logMsgEventDeliveryFailed,
			logAttrSink, e.sink.Name(),
			logAttrEventType, envelope.Event.EventType,
			logAttrEventID, envelope.Event.EventID.String(),
			LogAttrError, err.Error(),
		)
		labels[LogAttrStatus] = deliveryStatusFailed
		RecordEmitterEvent(ctx, e.metricsCollector, EmitterEventsDeliveredMetric, envelope.Event.EventType, labels)

		return
	}

	labels[LogAttrStatus] = deliveryStatusDelivered
	RecordEmitterEvent(ctx, e.metricsCollector, EmitterEventsDeliveredMetric, envelope.Event.EventType, labels)
}

func (e *Emitter) drop(ctx context.Context, envelope EventEnvelope, reason string) {
	logWarn(
		ctx, e.logger, e.contextualLogger, logMsgEventDropped,
		logAttrEventType, envelope.Event.EventType,
		logAttrEventID, envelope.Event.EventID.String(),
		logAttrAggregateID, envelope.Event.AggregateID.String(),
		logAttrReason, reason,
	)
	RecordEmitterEvent(ctx, e.metricsCollector, EmitterEventsDroppedMetric, envelope.Event.EventType, map[string]string{logAttrReason: reason})
}

var _ Publisher = (*Emitter)(nil)
