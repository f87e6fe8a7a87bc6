package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/ledgerbook/backend/internal/application/ledger"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/interfaces/http/dto"
)

// PartyHandler handles party-related API endpoints
type PartyHandler struct {
	BaseHandler
	partyService *ledgerapp.PartyService
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(partyService *ledgerapp.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// CreatePartyRequest represents a request to create a new party
type CreatePartyRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address" binding:"max=500"`
	Notes       string `json:"notes" binding:"max=1000"`
}

// Create creates a new trading party
func (h *PartyHandler) Create(c *gin.Context) {
	var req CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(),
		req.Name, req.ContactName, req.Phone, req.Email, req.Address, req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, party)
}

// GetByID returns one party's basic fields
func (h *PartyHandler) GetByID(c *gin.Context) {
	partyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	party, err := h.partyService.GetParty(c.Request.Context(), partyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, party)
}

// List lists parties with pagination and optional name/phone search
func (h *PartyHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	}

	parties, total, err := h.partyService.ListParties(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, parties, total, req.Page, req.PageSize)
}

// GetDetail returns the party with its transactions, payments and
// computed summary
func (h *PartyHandler) GetDetail(c *gin.Context) {
	partyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	detail, err := h.partyService.GetPartyDetail(c.Request.Context(), partyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, detail)
}

// RegisterRoutes registers party routes
func (h *PartyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	parties := rg.Group("/parties")
	{
		parties.GET("", h.List)
		parties.POST("", h.Create)
		parties.GET(":id", h.GetByID)
		parties.GET(":id/detail", h.GetDetail)
	}
}
