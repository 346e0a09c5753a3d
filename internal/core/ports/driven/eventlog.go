package driven

import (
	"context"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// EventLog is the Base's append-only orchestration log.
// Events are returned in append (chronological) order; the log is
// never compacted or rewritten.
type EventLog interface {
	// Append records one event at the end of the log.
	Append(ctx context.Context, event *domain.OrchestrationEvent) error

	// Load returns every event in append order.
	Load(ctx context.Context) ([]domain.OrchestrationEvent, error)
}
