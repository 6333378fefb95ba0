package oteladapters

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/trace"
)

const (
	logAttrTraceID = "trace_id"
	logAttrSpanID  = "span_id"
)

// TraceCorrelatingHandler adds trace_id and span_id of the active span to every record.
type TraceCorrelatingHandler struct {
	next slog.Handler
}

func NewTraceCorrelatingHandler(next slog.Handler) *TraceCorrelatingHandler {
	return &TraceCorrelatingHandler{next: next}
}

func (h *TraceCorrelatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *TraceCorrelatingHandler) Handle(ctx context.Context, record slog.Record) error {
	if spanContext := trace.SpanContextFromContext(ctx); spanContext.IsValid() {
		record = record.Clone()
		record.AddAttrs(
			slog.String(logAttrTraceID, spanContext.TraceID().String()),
			slog.String(logAttrSpanID, spanContext.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, record)
}

func (h *TraceCorrelatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceCorrelatingHandler{next: h.next.WithAttrs(attrs)}
}

func (h *TraceCorrelatingHandler) WithGroup(name string) slog.Handler {
	return &TraceCorrelatingHandler{next: h.next.WithGroup(name)}
}

// fanoutHandler hands every record to all handlers that are enabled for its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error

	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			errs = append(errs, handler.Handle(ctx, record.Clone()))
		}
	}

	return errors.Join(errs...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler.WithAttrs(attrs))
	}

	return fanoutHandler{handlers: handlers}
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler.WithGroup(name))
	}

	return fanoutHandler{handlers: handlers}
}

// NewBridgedLogger returns a logger writing trace-correlated records to local and, through the
// otelslog bridge, to the global OpenTelemetry LoggerProvider.
func NewBridgedLogger(name string, local slog.Handler) *slog.Logger {
	return slog.New(fanoutHandler{handlers: []slog.Handler{
		NewTraceCorrelatingHandler(local),
		otelslog.NewHandler(name),
	}})
}
