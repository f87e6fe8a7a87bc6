package payment

import (
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types emitted by the payment context
const (
	EventTypePaymentRecorded      = "payment.recorded"
	EventTypePaymentDeleted       = "payment.deleted"
	EventTypePartyPaymentCreated  = "party_payment.created"
	EventTypePartyPaymentReversed = "party_payment.reversed"
)

// PaymentRecordedEvent is raised when a direct payment is recorded
// against a sell item
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PartyID    uuid.UUID       `json:"party_id"`
	PartyName  string          `json:"party_name"`
	SellItemID uuid.UUID       `json:"sell_item_id"`
	Amount     decimal.Decimal `json:"amount"`
	ActorID    uuid.UUID       `json:"actor_id"`
}

// NewPaymentRecordedEvent creates a PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment, partyID uuid.UUID, partyName string) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, p.ID, "Payment"),
		PartyID:         partyID,
		PartyName:       partyName,
		SellItemID:      p.SellItemID,
		Amount:          p.Amount,
		ActorID:         p.CreatedBy,
	}
}

// PaymentDeletedEvent is raised when an admin hard-deletes a direct payment
type PaymentDeletedEvent struct {
	shared.BaseDomainEvent
	SellItemID uuid.UUID       `json:"sell_item_id"`
	Amount     decimal.Decimal `json:"amount"`
	ActorID    uuid.UUID       `json:"actor_id"`
}

// NewPaymentDeletedEvent creates a PaymentDeletedEvent
func NewPaymentDeletedEvent(p *Payment, actorID uuid.UUID) *PaymentDeletedEvent {
	return &PaymentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentDeleted, p.ID, "Payment"),
		SellItemID:      p.SellItemID,
		Amount:          p.Amount,
		ActorID:         actorID,
	}
}

// PartyPaymentCreatedEvent is raised after the allocation engine
// distributes a lump-sum payment
type PartyPaymentCreatedEvent struct {
	shared.BaseDomainEvent
	PartyID          uuid.UUID       `json:"party_id"`
	PartyName        string          `json:"party_name"`
	Amount           decimal.Decimal `json:"amount"`
	AllocationsCount int             `json:"allocations_count"`
	CreditAdded      decimal.Decimal `json:"credit_added"`
	ActorID          uuid.UUID       `json:"actor_id"`
}

// NewPartyPaymentCreatedEvent creates a PartyPaymentCreatedEvent
func NewPartyPaymentCreatedEvent(p *PartyPayment, partyName string) *PartyPaymentCreatedEvent {
	return &PartyPaymentCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypePartyPaymentCreated, p.ID, "PartyPayment"),
		PartyID:          p.PartyID,
		PartyName:        partyName,
		Amount:           p.Amount,
		AllocationsCount: len(p.Allocations),
		CreditAdded:      p.CreditAdded,
		ActorID:          p.CreatedBy,
	}
}

// PartyPaymentReversedEvent is raised after a party payment and all of
// its allocations have been reversed
type PartyPaymentReversedEvent struct {
	shared.BaseDomainEvent
	PartyID          uuid.UUID       `json:"party_id"`
	PartyName        string          `json:"party_name"`
	Amount           decimal.Decimal `json:"amount"`
	AllocationsCount int             `json:"allocations_count"`
	CreditReversed   decimal.Decimal `json:"credit_reversed"`
	ActorID          uuid.UUID       `json:"actor_id"`
}

// NewPartyPaymentReversedEvent creates a PartyPaymentReversedEvent
func NewPartyPaymentReversedEvent(p *PartyPayment, partyName string, creditReversed decimal.Decimal, actorID uuid.UUID) *PartyPaymentReversedEvent {
	return &PartyPaymentReversedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypePartyPaymentReversed, p.ID, "PartyPayment"),
		PartyID:          p.PartyID,
		PartyName:        partyName,
		Amount:           p.Amount,
		AllocationsCount: len(p.Allocations),
		CreditReversed:   creditReversed,
		ActorID:          actorID,
	}
}
