// Package audit collects the side effects dispatched handlers emit. The
// recorder is an external collaborator of the binding pipeline: handlers
// receive it through the container and record who did what; the pipeline
// itself never writes entries.
package audit

import (
	"sync"

	"go.uber.org/zap"
)

// Entry is one recorded side effect of a dispatched handler.
type Entry struct {
	Invocation string `json:"invocationId,omitempty"`
	UserID     int    `json:"userId"`
	UserName   string `json:"userName"`
	Action     string `json:"action,omitempty"`
}

// Recorder collects entries emitted by handlers.
type Recorder interface {
	Record(e Entry)
}

// ── Zap recorder ─────────────────────────────────────────────────────────────

// Zap writes entries through a structured logger.
type Zap struct {
	log *zap.Logger
}

// NewZap builds a Recorder over log.
func NewZap(log *zap.Logger) *Zap {
	return &Zap{log: log}
}

func (z *Zap) Record(e Entry) {
	z.log.Info("audit entry",
		zap.String("invocation", e.Invocation),
		zap.Int("userId", e.UserID),
		zap.String("userName", e.UserName),
		zap.String("action", e.Action),
	)
}

// ── Memory recorder ──────────────────────────────────────────────────────────

// Memory retains entries for inspection; swap it in for the Zap recorder in
// tests via a container override.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Record(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
}

// Entries returns a copy of everything recorded so far.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Reset discards all recorded entries.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}
