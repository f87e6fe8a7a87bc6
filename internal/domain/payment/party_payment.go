package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a party payment. A reversed payment
// stays in the store with its allocations as an inspectable historical
// record; there is no hard delete.
type Status string

const (
	StatusActive   Status = "active"
	StatusReversed Status = "reversed"
)

// PartyPayment is a lump-sum payment from a party, not pre-tied to any
// sell item. The allocation engine distributes it across the party's
// open sell items oldest-first and banks any residue as party credit.
type PartyPayment struct {
	shared.BaseAggregateRoot
	PartyID     uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      Method
	Notes       string
	CreatedBy   uuid.UUID

	Status        Status
	ReversedAt    *time.Time
	ReversedBy    *uuid.UUID
	ReverseReason string

	// CreditAdded is the unallocated residue banked to the party's
	// credit balance when the payment was created.
	CreditAdded decimal.Decimal

	// Allocations are immutable once created; reversal flips the
	// payment's status and restores balances but never touches them.
	Allocations []Allocation
}

// Allocation records how much of a party payment was applied to one
// sell item at allocation time.
type Allocation struct {
	shared.BaseEntity
	PartyPaymentID uuid.UUID
	SellItemID     uuid.UUID
	Amount         decimal.Decimal
}

// NewPartyPayment creates a lump-sum payment for a party
func NewPartyPayment(partyID uuid.UUID, amount decimal.Decimal, paymentDate time.Time, method Method, notes string, createdBy uuid.UUID) (*PartyPayment, error) {
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party payment requires a party")
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

	return &PartyPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartyID:           partyID,
		Amount:            amount,
		PaymentDate:       paymentDate,
		Method:            method,
		Notes:             notes,
		CreatedBy:         createdBy,
		Status:            StatusActive,
		CreditAdded:       decimal.Zero,
	}, nil
}

// AddAllocation records the application of part of this payment to a
// sell item. Only valid while the payment is being created.
func (p *PartyPayment) AddAllocation(sellItemID uuid.UUID, amount decimal.Decimal) (*Allocation, error) {
	if p.Status != StatusActive {
		return nil, shared.ErrInvalidState
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}

	alloc := Allocation{
		BaseEntity:     shared.NewBaseEntity(),
		PartyPaymentID: p.ID,
		SellItemID:     sellItemID,
		Amount:         amount,
	}
	p.Allocations = append(p.Allocations, alloc)
	return &p.Allocations[len(p.Allocations)-1], nil
}

// BankCredit records the unallocated residue of the payment
func (p *PartyPayment) BankCredit(amount decimal.Decimal) {
	p.CreditAdded = amount
}

// AllocatedAmount sums the payment's allocations
func (p *PartyPayment) AllocatedAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Allocations {
		total = total.Add(p.Allocations[i].Amount)
	}
	return total
}

// CreditPortion is the part of the payment that was banked as credit
// rather than allocated
func (p *PartyPayment) CreditPortion() decimal.Decimal {
	return p.Amount.Sub(p.AllocatedAmount())
}

// IsReversed reports whether the payment has been soft-deleted
func (p *PartyPayment) IsReversed() bool {
	return p.Status == StatusReversed
}

// MarkReversed transitions the payment to the reversed state. A second
// reversal attempt fails with ErrAlreadyDeleted.
func (p *PartyPayment) MarkReversed(by uuid.UUID, reason string) error {
	if p.Status == StatusReversed {
		return shared.ErrAlreadyDeleted
	}
	now := time.Now()
	p.Status = StatusReversed
	p.ReversedAt = &now
	p.ReversedBy = &by
	p.ReverseReason = reason
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}
