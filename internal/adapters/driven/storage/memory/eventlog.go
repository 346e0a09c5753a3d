package memory

import (
	"context"
	"sync"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
)

// Ensure EventLog implements the interface.
var _ driven.EventLog = (*EventLog)(nil)

// EventLog is an in-memory implementation of driven.EventLog.
type EventLog struct {
	mu     sync.RWMutex
	events []domain.OrchestrationEvent
}

// NewEventLog creates a new in-memory event log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Append records one event at the end of the log.
func (l *EventLog) Append(_ context.Context, event *domain.OrchestrationEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, *event)
	return nil
}

// Load returns every event in append order.
func (l *EventLog) Load(_ context.Context) ([]domain.OrchestrationEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.OrchestrationEvent, len(l.events))
	copy(out, l.events)
	return out, nil
}
