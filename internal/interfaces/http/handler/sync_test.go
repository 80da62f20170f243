package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/varelaprogramador/plusdelivery-backend/internal/application/sync"
)

type stubSyncStatus struct {
	task    *appsync.SyncTask
	started time.Time
	queued  []appsync.SyncTask
}

func (s *stubSyncStatus) Status() (*appsync.SyncTask, time.Time, bool) {
	return s.task, s.started, s.task != nil
}

func (s *stubSyncStatus) Backlog() []appsync.SyncTask {
	return s.queued
}

func setupSyncRouter(status SyncStatusProvider) *gin.Engine {
	router := setupTestRouter()
	group := router.Group("/api/v1")
	NewSyncHandler(status).RegisterRoutes(group)
	return router
}

func TestSyncHandler_Status_Idle(t *testing.T) {
	router := setupSyncRouter(&stubSyncStatus{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["running"])
	assert.Empty(t, data["queued"])
}

func TestSyncHandler_Status_RunningWithBacklog(t *testing.T) {
	task := appsync.NewSyncTask("plus-orders")
	status := &stubSyncStatus{
		task:    &task,
		started: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		queued:  []appsync.SyncTask{appsync.NewSyncTask("saboritte-send")},
	}
	router := setupSyncRouter(status)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["running"])
	assert.Equal(t, "plus-orders", data["task_label"])
	assert.Equal(t, []interface{}{"saboritte-send"}, data["queued"])
}
