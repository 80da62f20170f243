package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
)

// CatalogHandler proxies both platforms' product catalogs so the dashboard
// can offer linking candidates without holding its own copy
type CatalogHandler struct {
	BaseHandler
	source    integration.SourcePlatform
	target    integration.TargetPlatform
	directory integration.ClientDirectory
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(source integration.SourcePlatform, target integration.TargetPlatform, directory integration.ClientDirectory) *CatalogHandler {
	return &CatalogHandler{source: source, target: target, directory: directory}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/plus/products", h.PlusProducts)
		catalog.GET("/saboritte/products", h.SaboritteProducts)
		catalog.GET("/saboritte/clients", h.SaboritteClients)
	}
}

// PlusProducts returns the source platform's catalog
func (h *CatalogHandler) PlusProducts(c *gin.Context) {
	products, err := h.source.FetchProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// SaboritteProducts returns the target platform's catalog
func (h *CatalogHandler) SaboritteProducts(c *gin.Context) {
	products, err := h.target.FetchProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// SaboritteClients returns the contacts registered on the target platform
func (h *CatalogHandler) SaboritteClients(c *gin.Context) {
	clients, err := h.directory.FetchClients(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, clients)
}
