package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appsync "github.com/varelaprogramador/plusdelivery-backend/internal/application/sync"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
	"github.com/varelaprogramador/plusdelivery-backend/internal/interfaces/http/dto"
)

// SyncService drives imports from the source platform and forwards to the
// target platform
type SyncService interface {
	SyncFromPlus(ctx context.Context) (*appsync.SyncReport, error)
	SendToSaboritte(ctx context.Context, orderIDs []uuid.UUID) (*appsync.BatchSendReport, error)
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orders order.Repository
	syncer SyncService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders order.Repository, syncer SyncService) *OrderHandler {
	return &OrderHandler{orders: orders, syncer: syncer}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/stats", h.Stats)
		orders.GET("/:id", h.Get)
		orders.PATCH("/:id/status", h.UpdateStatus)
		orders.POST("/sync", h.Sync)
		orders.POST("/send", h.Send)
	}
}

type listOrdersRequest struct {
	dto.ListRequest
	Status   string `form:"status"`
	Sent     *bool  `form:"sent"`
	From     string `form:"from"`
	To       string `form:"to"`
	MinTotal string `form:"min_total"`
	MaxTotal string `form:"max_total"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type sendOrdersRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
}

// List returns orders matching the query, newest first
func (h *OrderHandler) List(c *gin.Context) {
	var req listOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	req.Normalize()

	filter := order.Filter{
		Search:       req.Search,
		SentToTarget: req.Sent,
		Limit:        req.Limit(),
		Offset:       req.Offset(),
	}
	if req.Status != "" {
		status := order.Status(req.Status)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown order status: "+req.Status)
			return
		}
		filter.Status = &status
	}
	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			h.BadRequest(c, "Invalid 'from' timestamp, expected RFC3339")
			return
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			h.BadRequest(c, "Invalid 'to' timestamp, expected RFC3339")
			return
		}
		filter.To = &to
	}
	if req.MinTotal != "" {
		min, err := decimal.NewFromString(req.MinTotal)
		if err != nil {
			h.BadRequest(c, "Invalid 'min_total' amount")
			return
		}
		filter.MinTotal = &min
	}
	if req.MaxTotal != "" {
		max, err := decimal.NewFromString(req.MaxTotal)
		if err != nil {
			h.BadRequest(c, "Invalid 'max_total' amount")
			return
		}
		filter.MaxTotal = &max
	}

	orders, err := h.orders.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	total, err := h.orders.Count(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]orderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i])
	}
	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// Get returns a single order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	o, err := h.orders.FindByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Order not found")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(o))
}

// Stats returns aggregated order counts and revenue
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// UpdateStatus applies a manual status change to an order
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	o, err := h.orders.FindByID(ctx, uuid.MustParse(idReq.ID))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Order not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	if err := o.SetStatus(order.Status(req.Status)); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.orders.Save(ctx, o); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(o))
}

// Sync imports new orders from the source platform
func (h *OrderHandler) Sync(c *gin.Context) {
	report, err := h.syncer.SyncFromPlus(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Send forwards the given orders to the target platform
func (h *OrderHandler) Send(c *gin.Context) {
	var req sendOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.syncer.SendToSaboritte(c.Request.Context(), req.OrderIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
