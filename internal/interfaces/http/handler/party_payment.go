package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	paymentapp "github.com/ledgerbook/backend/internal/application/payment"
	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/ledgerbook/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// PartyPaymentHandler handles lump-sum party payment API endpoints
type PartyPaymentHandler struct {
	BaseHandler
	partyPaymentService *paymentapp.PartyPaymentService
}

// NewPartyPaymentHandler creates a new PartyPaymentHandler
func NewPartyPaymentHandler(partyPaymentService *paymentapp.PartyPaymentService) *PartyPaymentHandler {
	return &PartyPaymentHandler{partyPaymentService: partyPaymentService}
}

// CreatePartyPaymentRequest represents a request to record a lump-sum
// payment from a party
type CreatePartyPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate   string  `json:"payment_date" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash bank cheque transfer"`
	Notes         string  `json:"notes" binding:"max=1000"`
}

// DeletePartyPaymentRequest carries the optional reversal reason
type DeletePartyPaymentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// Create records a lump-sum payment and allocates it across the party's
// outstanding sell items
func (h *PartyPaymentHandler) Create(c *gin.Context) {
	partyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	var req CreatePartyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	paymentDate, err := time.Parse(dateLayout, req.PaymentDate)
	if err != nil {
		h.BadRequest(c, "Invalid payment date, expected YYYY-MM-DD")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.partyPaymentService.CreatePartyPayment(
		c.Request.Context(),
		partyID,
		decimal.NewFromFloat(req.Amount),
		paymentDate,
		payment.Method(req.PaymentMethod),
		req.Notes,
		actor,
	)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a party's non-reversed payments, most recent first
func (h *PartyPaymentHandler) List(c *gin.Context) {
	partyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	payments, err := h.partyPaymentService.ListPartyPayments(c.Request.Context(), partyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// GetByID returns one party payment, reversed or not, with its allocations
func (h *PartyPaymentHandler) GetByID(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party payment ID format")
		return
	}

	pp, err := h.partyPaymentService.GetPartyPayment(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, pp)
}

// Delete reverses a party payment: allocations are undone and any
// credited residue is reclaimed. Admin only.
func (h *PartyPaymentHandler) Delete(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party payment ID format")
		return
	}

	// Reason body is optional
	var req DeletePartyPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.partyPaymentService.DeletePartyPayment(c.Request.Context(), paymentID, req.Reason, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers party payment routes
func (h *PartyPaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	parties := rg.Group("/parties")
	{
		parties.POST(":id/party-payments", h.Create)
		parties.GET(":id/party-payments", h.List)
	}

	partyPayments := rg.Group("/party-payments")
	{
		partyPayments.GET(":id", h.GetByID)
		partyPayments.DELETE(":id", middleware.RequireAdmin(), h.Delete)
	}
}
