package scheduler

import (
	gosync "sync"
	"time"

	appsync "github.com/varelaprogramador/plusdelivery-backend/internal/application/sync"
)

// SyncGate is the process-wide serialization gate for sync runs. At most
// one task holds the gate; a second StartSync while one is active joins a
// FIFO backlog and the caller backs off. The gate is owned by the
// composition root and shared by every sync entry point (HTTP and
// auto-sync), it does not lock the stores themselves.
type SyncGate struct {
	mu        gosync.Mutex
	active    *appsync.SyncTask
	startedAt time.Time
	backlog   []appsync.SyncTask
}

// NewSyncGate creates an idle gate with an empty backlog
func NewSyncGate() *SyncGate {
	return &SyncGate{}
}

// StartSync claims the gate for the task. Returns false when another task
// is active; the refused task is appended to the backlog and the caller
// must not proceed.
func (g *SyncGate) StartSync(task appsync.SyncTask) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active != nil {
		g.backlog = append(g.backlog, task)
		return false
	}
	g.active = &task
	g.startedAt = time.Now()
	return true
}

// FinishSync releases the gate. The oldest queued task, if any, is
// promoted into the active slot and returned; otherwise the gate goes
// idle and FinishSync returns nil.
func (g *SyncGate) FinishSync() *appsync.SyncTask {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.backlog) == 0 {
		g.active = nil
		g.startedAt = time.Time{}
		return nil
	}

	next := g.backlog[0]
	g.backlog = g.backlog[1:]
	g.active = &next
	g.startedAt = time.Now()

	promoted := next
	return &promoted
}

// Status reports the task currently holding the gate, if any, and when it
// started. Used by the sync status endpoint.
func (g *SyncGate) Status() (task *appsync.SyncTask, startedAt time.Time, running bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active == nil {
		return nil, time.Time{}, false
	}
	copied := *g.active
	return &copied, g.startedAt, true
}

// Backlog returns a snapshot of the queued tasks in promotion order
func (g *SyncGate) Backlog() []appsync.SyncTask {
	g.mu.Lock()
	defer g.mu.Unlock()

	queued := make([]appsync.SyncTask, len(g.backlog))
	copy(queued, g.backlog)
	return queued
}

// Ensure SyncGate implements the application gate port
var _ appsync.Gate = (*SyncGate)(nil)
