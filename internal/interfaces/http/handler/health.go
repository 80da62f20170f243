package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/varelaprogramador/plusdelivery-backend/internal/interfaces/http/dto"
)

// Pinger checks a dependency's liveness
type Pinger interface {
	Ping() error
}

// HealthHandler handles the health endpoint
type HealthHandler struct {
	BaseHandler
	db      Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service and database liveness
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	database := "ok"
	code := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		database = "unreachable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, dto.NewSuccessResponse(gin.H{
		"status":   status,
		"database": database,
		"version":  h.version,
	}))
}
