package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines the interface for direct payment persistence
type PaymentRepository interface {
	// Create creates a new direct payment
	Create(ctx context.Context, payment *Payment) error

	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindBySellItemID lists the payments recorded against a sell item,
	// most recent payment date first
	FindBySellItemID(ctx context.Context, sellItemID uuid.UUID) ([]Payment, error)

	// SumBySellItemID sums the remaining payment rows for a sell item
	SumBySellItemID(ctx context.Context, sellItemID uuid.UUID) (decimal.Decimal, error)

	// Delete hard-deletes a payment row
	Delete(ctx context.Context, id uuid.UUID) error
}

// PartyPaymentRepository defines the interface for party payment and
// allocation persistence
type PartyPaymentRepository interface {
	// Create persists a party payment together with its allocations
	Create(ctx context.Context, payment *PartyPayment) error

	// FindByID finds a party payment with its allocations
	FindByID(ctx context.Context, id uuid.UUID) (*PartyPayment, error)

	// FindByPartyID lists a party's non-reversed payments, most recent
	// payment date first
	FindByPartyID(ctx context.Context, partyID uuid.UUID) ([]PartyPayment, error)

	// Save updates a party payment's reversal state. Allocations are
	// immutable and are never written back.
	Save(ctx context.Context, payment *PartyPayment) error

	// CountActive counts non-reversed party payments across all parties
	CountActive(ctx context.Context) (int64, error)

	// LastPaymentDate returns the most recent non-reversed payment date
	// for a party, or nil when the party has none
	LastPaymentDate(ctx context.Context, partyID uuid.UUID) (*time.Time, error)
}
