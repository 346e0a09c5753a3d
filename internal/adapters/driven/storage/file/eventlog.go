package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
	"github.com/refbase-labs/refbase-cli/internal/logger"
)

// Ensure EventLog implements the interface.
var _ driven.EventLog = (*EventLog)(nil)

// EventLog is a JSON-lines implementation of driven.EventLog. Each
// event is one line appended with O_APPEND; the log is never rewritten.
type EventLog struct {
	mu   sync.Mutex
	path string
}

// NewEventLog creates an event log at path, creating parent directories
// as needed.
func NewEventLog(path string) (*EventLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating event log directory: %w", err)
	}
	return &EventLog{path: path}, nil
}

// Append records one event at the end of the log.
func (l *EventLog) Append(_ context.Context, event *domain.OrchestrationEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending event: %w", err)
	}
	return nil
}

// Load returns every event in append order. Malformed lines are skipped
// with a warning rather than poisoning the whole log.
func (l *EventLog) Load(_ context.Context) ([]domain.OrchestrationEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	defer f.Close()

	var events []domain.OrchestrationEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event domain.OrchestrationEvent
		if err := json.Unmarshal(line, &event); err != nil {
			logger.Warn("Skipping malformed event log line: %v", err)
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading event log: %w", err)
	}
	return events, nil
}
