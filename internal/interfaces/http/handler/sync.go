package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appsync "github.com/varelaprogramador/plusdelivery-backend/internal/application/sync"
)

// SyncStatusProvider reports the synchronization currently holding the
// gate and the tasks queued behind it
type SyncStatusProvider interface {
	Status() (task *appsync.SyncTask, startedAt time.Time, running bool)
	Backlog() []appsync.SyncTask
}

// SyncHandler exposes the synchronization gate state
type SyncHandler struct {
	BaseHandler
	status SyncStatusProvider
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(status SyncStatusProvider) *SyncHandler {
	return &SyncHandler{status: status}
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sync/status", h.Status)
}

type syncStatusResponse struct {
	Running   bool       `json:"running"`
	TaskID    string     `json:"task_id,omitempty"`
	TaskLabel string     `json:"task_label,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Queued    []string   `json:"queued"`
}

// Status returns the current gate state
func (h *SyncHandler) Status(c *gin.Context) {
	task, startedAt, running := h.status.Status()

	resp := syncStatusResponse{Running: running, Queued: []string{}}
	if running && task != nil {
		resp.TaskID = task.ID.String()
		resp.TaskLabel = task.Label
		resp.StartedAt = &startedAt
	}
	for _, queued := range h.status.Backlog() {
		resp.Queued = append(resp.Queued, queued.Label)
	}
	h.Success(c, resp)
}
