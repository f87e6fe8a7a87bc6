package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Method is the instrument a payment was made with
type Method string

const (
	MethodCash     Method = "cash"
	MethodBank     Method = "bank"
	MethodCheque   Method = "cheque"
	MethodTransfer Method = "transfer"
)

// Payment is a direct payment tied to exactly one sell item. Direct
// payments are hard-deleted (admin-gated), unlike party payments which
// are only ever soft-deleted.
type Payment struct {
	shared.BaseAggregateRoot
	SellItemID  uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      Method
	Notes       string
	CreatedBy   uuid.UUID
}

// NewPayment creates a direct payment against a sell item
func NewPayment(sellItemID uuid.UUID, amount decimal.Decimal, paymentDate time.Time, method Method, notes string, createdBy uuid.UUID) (*Payment, error) {
	if sellItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELL_ITEM", "Payment requires a sell item")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if paymentDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment requires a date")
	}
	if method == "" {
		method = MethodCash
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellItemID:        sellItemID,
		Amount:            amount,
		PaymentDate:       paymentDate,
		Method:            method,
		Notes:             notes,
		CreatedBy:         createdBy,
	}, nil
}
