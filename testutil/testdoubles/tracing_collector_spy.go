package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// TracingCollectorSpy captures started and finished spans for testing.
type TracingCollectorSpy struct {
	spans []*SpanContextSpy
	mu    sync.Mutex
}

// SpanContextSpy is the span handed out by TracingCollectorSpy.
type SpanContextSpy struct {
	Name       string
	Attributes map[string]string
	Status     string
	Finished   bool
	mu         sync.Mutex
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (t *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, recordstore.SpanContext) {
	span := &SpanContextSpy{Name: name, Attributes: maps.Clone(attrs)}
	if span.Attributes == nil {
		span.Attributes = map[string]string{}
	}

	t.mu.Lock()
	t.spans = append(t.spans, span)
	t.mu.Unlock()

	return ctx, span
}

func (t *TracingCollectorSpy) FinishSpan(spanCtx recordstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpanContextSpy)
	if !ok {
		return
	}

	span.mu.Lock()
	defer span.mu.Unlock()

	maps.Copy(span.Attributes, attrs)
	span.Status = status
	span.Finished = true
}

// Spans returns all spans started so far.
func (t *TracingCollectorSpy) Spans() []*SpanContextSpy {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]*SpanContextSpy(nil), t.spans...)
}

func (s *SpanContextSpy) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = status
}

func (s *SpanContextSpy) AddAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Attributes[key] = value
}

var _ recordstore.TracingCollector = (*TracingCollectorSpy)(nil)
