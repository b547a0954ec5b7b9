package recorder

import (
	"context"
	"sync"

	"FishingDay/internal/game"
)

// NoopRecorder keeps per-session totals in memory only. Used when SQLite is not configured.
type NoopRecorder struct {
	mu       sync.Mutex
	sessions map[string]*Summary
}

func NewNoopRecorder() *NoopRecorder {
	return &NoopRecorder{sessions: make(map[string]*Summary)}
}

func (n *NoopRecorder) RecordDay(_ context.Context, r game.DayReport) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	s, ok := n.sessions[r.SessionID]
	if !ok {
		s = &Summary{}
		n.sessions[r.SessionID] = s
	}
	s.Add(r)
	return nil
}

func (n *NoopRecorder) Summary(_ context.Context, sessionID string) (Summary, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if s, ok := n.sessions[sessionID]; ok {
		return *s, nil
	}
	return Summary{}, nil
}

func (n *NoopRecorder) Close() error { return nil }
