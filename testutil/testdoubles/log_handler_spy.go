package testdoubles

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures log records for testing.
type LogHandlerSpy struct {
	records     []slog.Record
	mu          sync.Mutex
	logToStdout bool
}

// NewLogHandlerSpy creates a new LogHandlerSpy.
// Switch logToStdout on to see the actual log output while debugging a test.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	return &LogHandlerSpy{
		records:     make([]slog.Record, 0),
		logToStdout: logToStdout,
	}
}

// Logger returns a *slog.Logger writing into this spy.
func (h *LogHandlerSpy) Logger() *slog.Logger {
	return slog.New(h)
}

func (h *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record.Clone())

	if h.logToStdout {
		_ = slog.NewJSONHandler(os.Stdout, nil).Handle(ctx, record)
	}

	return nil
}

func (h *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return h
}

// Records returns a copy of all captured records.
func (h *LogHandlerSpy) Records() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	records := make([]slog.Record, len(h.records))
	copy(records, h.records)

	return records
}

// HasMessage reports whether a record with exactly this message was captured.
func (h *LogHandlerSpy) HasMessage(msg string) bool {
	for _, record := range h.Records() {
		if record.Message == msg {
			return true
		}
	}

	return false
}

// HasMessagePrefix reports whether a record whose message starts with prefix was captured.
func (h *LogHandlerSpy) HasMessagePrefix(prefix string) bool {
	for _, record := range h.Records() {
		if strings.HasPrefix(record.Message, prefix) {
			return true
		}
	}

	return false
}

// HasAttr reports whether a record with message msg carries the attribute key=value.
func (h *LogHandlerSpy) HasAttr(msg, key, value string) bool {
	for _, record := range h.Records() {
		if record.Message != msg {
			continue
		}

		found := false
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == key && attr.Value.String() == value {
				found = true
				return false
			}

			return true
		})

		if found {
			return true
		}
	}

	return false
}

// Reset clears all captured records.
func (h *LogHandlerSpy) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = h.records[:0]
}
