// Package performance provides lightweight operation tracking for
// proposalcraft request handling.
package performance

import (
	"sync"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
)

// Marker tracks a single named operation from start to completion.
type Marker struct {
	Operation string
	SessionID string
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Completed bool

	tracker *Tracker
}

// Tracker records operation markers and flags slow operations.
type Tracker struct {
	mu            sync.Mutex
	completed     []*Marker
	maxCompleted  int
	slowThreshold time.Duration
	logger        *logging.ChanneledLogger
}

// NewTracker creates a tracker that logs operations slower than slowThreshold.
func NewTracker(slowThreshold time.Duration, maxCompleted int, logger *logging.ChanneledLogger) *Tracker {
	if maxCompleted <= 0 {
		maxCompleted = 1000
	}
	return &Tracker{
		maxCompleted:  maxCompleted,
		slowThreshold: slowThreshold,
		logger:        logger,
	}
}

// StartOperation begins tracking a named operation for an editor session.
// An empty sessionID is fine for session-less requests.
func (t *Tracker) StartOperation(operation, sessionID string) *Marker {
	return &Marker{
		Operation: operation,
		SessionID: sessionID,
		StartTime: time.Now(),
		tracker:   t,
	}
}

// SetSuccess completes the marker with the given outcome. Safe to call once;
// later calls are ignored.
func (m *Marker) SetSuccess(success bool) {
	if m.Completed {
		return
	}
	m.Completed = true
	m.Success = success
	m.Duration = time.Since(m.StartTime)
	if m.tracker != nil {
		m.tracker.record(m)
	}
}

func (t *Tracker) record(m *Marker) {
	t.mu.Lock()
	t.completed = append(t.completed, m)
	if len(t.completed) > t.maxCompleted {
		t.completed = t.completed[len(t.completed)-t.maxCompleted:]
	}
	t.mu.Unlock()

	if t.logger == nil {
		return
	}
	if m.Duration >= t.slowThreshold {
		t.logger.Perf().Warn("Slow operation",
			"operation", m.Operation,
			"sessionId", m.SessionID,
			"duration", m.Duration,
			"success", m.Success,
		)
	} else {
		t.logger.Perf().Debug("Operation completed",
			"operation", m.Operation,
			"sessionId", m.SessionID,
			"duration", m.Duration,
			"success", m.Success,
		)
	}
}

// CompletedCount returns how many markers the tracker currently retains.
func (t *Tracker) CompletedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.completed)
}
