package sync

import "github.com/google/uuid"

// SyncTask identifies one serialized sync run
type SyncTask struct {
	ID    uuid.UUID
	Label string
}

// NewSyncTask creates a task with a fresh ID
func NewSyncTask(label string) SyncTask {
	return SyncTask{ID: uuid.New(), Label: label}
}

// Gate serializes sync runs process-wide. StartSync returns false when
// another task is holding the gate; the refused task is queued and the
// caller must back off and report ErrSyncInProgress. FinishSync promotes
// the oldest queued task into the active slot, or clears the gate when
// the backlog is empty. The gate is cooperative, it does not lock the
// stores.
type Gate interface {
	StartSync(task SyncTask) bool
	FinishSync() *SyncTask
}
