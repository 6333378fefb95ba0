package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

// RecordingPublisher records published domain events synchronously, in publish order.
type RecordingPublisher struct {
	events core.DomainEvents
	mu     sync.Mutex
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(_ context.Context, events ...core.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, events...)
}

// Events returns a copy of all recorded events.
func (p *RecordingPublisher) Events() core.DomainEvents {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append(core.DomainEvents(nil), p.events...)
}

// EventTypes returns the types of all recorded events, in publish order.
func (p *RecordingPublisher) EventTypes() []string {
	events := p.Events()

	types := make([]string, 0, len(events))
	for _, event := range events {
		types = append(types, event.EventType)
	}

	return types
}

// CountOf returns how many events of eventType were recorded.
func (p *RecordingPublisher) CountOf(eventType string) int {
	count := 0

	for _, event := range p.Events() {
		if event.IsEventType() == eventType {
			count++
		}
	}

	return count
}

func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = nil
}
