package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
	"github.com/varelaprogramador/plusdelivery-backend/internal/interfaces/http/dto"
)

// ProductLinkHandler handles product link endpoints
type ProductLinkHandler struct {
	BaseHandler
	links integration.ProductLinkRepository
}

// NewProductLinkHandler creates a new ProductLinkHandler
func NewProductLinkHandler(links integration.ProductLinkRepository) *ProductLinkHandler {
	return &ProductLinkHandler{links: links}
}

// RegisterRoutes registers product link routes
func (h *ProductLinkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	links := rg.Group("/product-links")
	{
		links.GET("", h.List)
		links.POST("", h.Create)
		links.GET("/:id", h.Get)
		links.DELETE("/:id", h.Delete)
	}
}

type linkProductRequest struct {
	Source struct {
		ID         string          `json:"id" binding:"required"`
		Name       string          `json:"name" binding:"required"`
		Category   string          `json:"category"`
		Price      decimal.Decimal `json:"price"`
		PromoPrice decimal.Decimal `json:"promo_price"`
		Enabled    bool            `json:"enabled"`
	} `json:"source" binding:"required"`
	Target struct {
		ID       string          `json:"id" binding:"required"`
		Name     string          `json:"name" binding:"required"`
		Category string          `json:"category"`
		Price    decimal.Decimal `json:"price"`
		Enabled  bool            `json:"enabled"`
		Image    string          `json:"image"`
	} `json:"target" binding:"required"`
	Variation *struct {
		Description string          `json:"description" binding:"required"`
		Price       decimal.Decimal `json:"price"`
	} `json:"variation"`
}

type productLinkResponse struct {
	ID                   uuid.UUID       `json:"id"`
	SourceID             string          `json:"source_id"`
	SourceName           string          `json:"source_name"`
	SourceCategory       string          `json:"source_category,omitempty"`
	SourcePrice          decimal.Decimal `json:"source_price"`
	SourcePromoPrice     decimal.Decimal `json:"source_promo_price"`
	SourceEnabled        bool            `json:"source_enabled"`
	TargetID             string          `json:"target_id"`
	TargetName           string          `json:"target_name"`
	TargetCategory       string          `json:"target_category,omitempty"`
	TargetPrice          decimal.Decimal `json:"target_price"`
	TargetEnabled        bool            `json:"target_enabled"`
	TargetImage          string          `json:"target_image,omitempty"`
	VariationDescription string          `json:"variation_description,omitempty"`
	VariationPrice       decimal.Decimal `json:"variation_price"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func toProductLinkResponse(l *integration.ProductLink) productLinkResponse {
	return productLinkResponse{
		ID:                   l.ID,
		SourceID:             l.SourceID,
		SourceName:           l.SourceName,
		SourceCategory:       l.SourceCategory,
		SourcePrice:          l.SourcePrice,
		SourcePromoPrice:     l.SourcePromoPrice,
		SourceEnabled:        l.SourceEnabled,
		TargetID:             l.TargetID,
		TargetName:           l.TargetName,
		TargetCategory:       l.TargetCategory,
		TargetPrice:          l.TargetPrice,
		TargetEnabled:        l.TargetEnabled,
		TargetImage:          l.TargetImage,
		VariationDescription: l.VariationDescription,
		VariationPrice:       l.VariationPrice,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

// List returns links matching the search query
func (h *ProductLinkHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	req.Normalize()

	filter := integration.ProductLinkFilter{
		Search: req.Search,
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}

	ctx := c.Request.Context()
	links, err := h.links.FindAll(ctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	total, err := h.links.Count(ctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]productLinkResponse, len(links))
	for i := range links {
		responses[i] = toProductLinkResponse(&links[i])
	}
	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// Get returns a single link by ID
func (h *ProductLinkHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid link ID")
		return
	}

	link, err := h.links.FindByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Product link not found")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductLinkResponse(link))
}

// Create links a source product to a target product
func (h *ProductLinkHandler) Create(c *gin.Context) {
	var req linkProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	link, err := integration.NewProductLink(
		integration.SourceProduct{
			ID:         req.Source.ID,
			Name:       req.Source.Name,
			Category:   req.Source.Category,
			Price:      req.Source.Price,
			PromoPrice: req.Source.PromoPrice,
			Enabled:    req.Source.Enabled,
		},
		integration.TargetProduct{
			ID:       req.Target.ID,
			Name:     req.Target.Name,
			Category: req.Target.Category,
			Price:    req.Target.Price,
			Enabled:  req.Target.Enabled,
			Image:    req.Target.Image,
		},
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if req.Variation != nil {
		link.WithVariation(integration.ProductVariation{
			Description: req.Variation.Description,
			Price:       req.Variation.Price,
		})
	}

	if err := h.links.Save(c.Request.Context(), link); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toProductLinkResponse(link))
}

// Delete removes a link
func (h *ProductLinkHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid link ID")
		return
	}

	if err := h.links.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Product link not found")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
