package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentResponse is the application-level view of a direct payment
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	SellItemID  uuid.UUID       `json:"sell_item_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      payment.Method  `json:"method"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecordPaymentResult couples the created payment with the sell item's
// recomputed balance
type RecordPaymentResult struct {
	Payment         PaymentResponse `json:"payment"`
	PaymentReceived decimal.Decimal `json:"payment_received"`
	BalanceLeft     decimal.Decimal `json:"balance_left"`
}

// DeletePaymentResult reports the sell item's balance after an admin
// removed a direct payment
type DeletePaymentResult struct {
	SellItemID      uuid.UUID       `json:"sell_item_id"`
	PaymentReceived decimal.Decimal `json:"payment_received"`
	BalanceLeft     decimal.Decimal `json:"balance_left"`
}

// AllocationResponse is the view of one allocation row
type AllocationResponse struct {
	ID         uuid.UUID       `json:"id"`
	SellItemID uuid.UUID       `json:"sell_item_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// PartyPaymentResponse is the application-level view of a party payment
type PartyPaymentResponse struct {
	ID            uuid.UUID            `json:"id"`
	PartyID       uuid.UUID            `json:"party_id"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentDate   time.Time            `json:"payment_date"`
	Method        payment.Method       `json:"method"`
	Notes         string               `json:"notes,omitempty"`
	Status        payment.Status       `json:"status"`
	ReversedAt    *time.Time           `json:"reversed_at,omitempty"`
	ReverseReason string               `json:"reverse_reason,omitempty"`
	CreditAdded   decimal.Decimal      `json:"credit_added"`
	Allocations   []AllocationResponse `json:"allocations,omitempty"`
	CreatedBy     uuid.UUID            `json:"created_by"`
	CreatedAt     time.Time            `json:"created_at"`
}

// CreatePartyPaymentResult is returned by the allocation engine
type CreatePartyPaymentResult struct {
	PartyPayment     PartyPaymentResponse `json:"party_payment"`
	AllocationsCount int                  `json:"allocations_count"`
	CreditAdded      decimal.Decimal      `json:"credit_added"`
}

// ReversePartyPaymentResult is returned after a reversal
type ReversePartyPaymentResult struct {
	PartyPaymentID   uuid.UUID       `json:"party_payment_id"`
	AllocationsCount int             `json:"allocations_count"`
	CreditReversed   decimal.Decimal `json:"credit_reversed"`
}

// ToPaymentResponse maps a domain payment to its response form
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		SellItemID:  p.SellItemID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Notes:       p.Notes,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

// ToPaymentResponses maps a slice of domain payments
func ToPaymentResponses(payments []payment.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// ToPartyPaymentResponse maps a domain party payment to its response form
func ToPartyPaymentResponse(p *payment.PartyPayment) PartyPaymentResponse {
	allocations := make([]AllocationResponse, len(p.Allocations))
	for i := range p.Allocations {
		allocations[i] = AllocationResponse{
			ID:         p.Allocations[i].ID,
			SellItemID: p.Allocations[i].SellItemID,
			Amount:     p.Allocations[i].Amount,
		}
	}
	return PartyPaymentResponse{
		ID:            p.ID,
		PartyID:       p.PartyID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		Method:        p.Method,
		Notes:         p.Notes,
		Status:        p.Status,
		ReversedAt:    p.ReversedAt,
		ReverseReason: p.ReverseReason,
		CreditAdded:   p.CreditAdded,
		Allocations:   allocations,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPartyPaymentResponses maps a slice of domain party payments
func ToPartyPaymentResponses(payments []payment.PartyPayment) []PartyPaymentResponse {
	responses := make([]PartyPaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPartyPaymentResponse(&payments[i])
	}
	return responses
}
