package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/partner"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
	"github.com/varelaprogramador/plusdelivery-backend/internal/interfaces/http/dto"
)

// ClientHandler handles registered client endpoints
type ClientHandler struct {
	BaseHandler
	clients partner.ClientRepository
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients partner.ClientRepository) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.GET("", h.List)
		clients.POST("", h.Create)
		clients.GET("/:id", h.Get)
		clients.PUT("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
	}
}

type clientRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required,br_phone"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Blocked      bool   `json:"blocked"`
}

type clientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	NormalizedPhone string    `json:"normalized_phone"`
	Address         string    `json:"address,omitempty"`
	Neighborhood    string    `json:"neighborhood,omitempty"`
	City            string    `json:"city,omitempty"`
	State           string    `json:"state,omitempty"`
	Blocked         bool      `json:"blocked"`
	AllowBot        bool      `json:"allow_bot"`
	AllowCampaigns  bool      `json:"allow_campaigns"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toClientResponse(cl *partner.Client) clientResponse {
	return clientResponse{
		ID:              cl.ID,
		Name:            cl.Name,
		Phone:           cl.Phone,
		NormalizedPhone: cl.NormalizedPhone,
		Address:         cl.Address,
		Neighborhood:    cl.Neighborhood,
		City:            cl.City,
		State:           cl.State,
		Blocked:         cl.Blocked,
		AllowBot:        cl.AllowBot,
		AllowCampaigns:  cl.AllowCampaigns,
		CreatedAt:       cl.CreatedAt,
		UpdatedAt:       cl.UpdatedAt,
	}
}

// List returns all registered clients. With ?phone= it looks up the single
// client whose normalized phone matches.
func (h *ClientHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if phone := c.Query("phone"); phone != "" {
		normalized := partner.NormalizePhone(phone)
		client, err := h.clients.FindByNormalizedPhone(ctx, normalized)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				h.Success(c, []clientResponse{})
				return
			}
			h.HandleError(c, err)
			return
		}
		h.Success(c, []clientResponse{toClientResponse(client)})
		return
	}

	clients, err := h.clients.FindAll(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	responses := make([]clientResponse, len(clients))
	for i := range clients {
		responses[i] = toClientResponse(&clients[i])
	}
	h.Success(c, responses)
}

// Get returns a single client by ID
func (h *ClientHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clients.FindByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Client not found")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, toClientResponse(client))
}

// Create registers a client
func (h *ClientHandler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := partner.NewClient(req.Name, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	client.SetAddress(req.Address, req.Neighborhood, req.City, req.State)
	if req.Blocked {
		client.Block()
	}

	if err := h.clients.Save(c.Request.Context(), client); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toClientResponse(client))
}

// Update replaces a client's contact data
func (h *ClientHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	client, err := h.clients.FindByID(ctx, uuid.MustParse(idReq.ID))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Client not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	client.Name = req.Name
	if err := client.UpdatePhone(req.Phone); err != nil {
		h.HandleError(c, err)
		return
	}
	client.SetAddress(req.Address, req.Neighborhood, req.City, req.State)
	if req.Blocked {
		client.Block()
	} else {
		client.Unblock()
	}

	if err := h.clients.Save(ctx, client); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toClientResponse(client))
}

// Delete removes a client
func (h *ClientHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clients.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Client not found")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
