package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/notification"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
	"github.com/varelaprogramador/plusdelivery-backend/internal/interfaces/http/dto"
)

// NotificationHandler handles dashboard notification endpoints
type NotificationHandler struct {
	BaseHandler
	notifications notification.Repository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications notification.Repository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:id/read", h.MarkRead)
	}
}

type notificationResponse struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Type      notification.Type `json:"type"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}

func toNotificationResponse(n *notification.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// List returns notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	onlyUnread := c.Query("unread") == "true"
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	notifications, err := h.notifications.FindAll(c.Request.Context(), onlyUnread, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]notificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = toNotificationResponse(&notifications[i])
	}
	h.Success(c, responses)
}

// UnreadCount returns the number of unread notifications
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.CountUnread(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Notification not found")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkAllRead marks every notification as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
