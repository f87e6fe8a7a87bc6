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

// dateLayout is the wire format for payment dates
const dateLayout = "2006-01-02"

// PaymentHandler handles direct payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest represents a request to record a direct payment
// against one sell item
type RecordPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate   string  `json:"payment_date" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash bank cheque transfer"`
	Notes         string  `json:"notes" binding:"max=1000"`
}

// Record records a direct payment against a sell item
func (h *PaymentHandler) Record(c *gin.Context) {
	sellItemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sell item ID format")
		return
	}

	var req RecordPaymentRequest
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

	result, err := h.paymentService.RecordPayment(
		c.Request.Context(),
		sellItemID,
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

// List returns the payments recorded against a sell item, most recent first
func (h *PaymentHandler) List(c *gin.Context) {
	sellItemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sell item ID format")
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), sellItemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// Delete hard-deletes a direct payment and returns the recomputed
// balance. Admin only.
func (h *PaymentHandler) Delete(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.paymentService.DeletePayment(c.Request.Context(), paymentID, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers direct payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sellItems := rg.Group("/sell-items")
	{
		sellItems.POST(":id/payments", h.Record)
		sellItems.GET(":id/payments", h.List)
	}

	payments := rg.Group("/payments")
	{
		payments.DELETE(":id", middleware.RequireAdmin(), h.Delete)
	}
}
