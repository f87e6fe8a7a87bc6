package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for direct payments.
type PaymentModel struct {
	AggregateModel
	SellItemID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentDate time.Time       `gorm:"not null;index"`
	Method      payment.Method  `gorm:"type:varchar(20);not null;default:'cash'"`
	Notes       string          `gorm:"type:text"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *payment.Payment {
	return &payment.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SellItemID:        m.SellItemID,
		Amount:            m.Amount,
		PaymentDate:       m.PaymentDate,
		Method:            m.Method,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *payment.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.SellItemID = p.SellItemID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.Method = p.Method
	m.Notes = p.Notes
	m.CreatedBy = p.CreatedBy
}

// PaymentModelFromDomain creates a new persistence model from a domain
// Payment.
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// PartyPaymentModel is the persistence model for party payments.
// Reversed payments keep their row and allocations; Status plus the
// reversal columns carry the soft-delete state.
type PartyPaymentModel struct {
	AggregateModel
	PartyID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentDate   time.Time       `gorm:"not null;index"`
	Method        payment.Method  `gorm:"type:varchar(20);not null;default:'cash'"`
	Notes         string          `gorm:"type:text"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	Status        payment.Status  `gorm:"type:varchar(20);not null;default:'active';index"`
	ReversedAt    *time.Time      `gorm:""`
	ReversedBy    *uuid.UUID      `gorm:"type:uuid"`
	ReverseReason string          `gorm:"type:text"`
	CreditAdded   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Allocations []AllocationModel `gorm:"foreignKey:PartyPaymentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PartyPaymentModel) TableName() string {
	return "party_payments"
}

// ToDomain converts the persistence model to a domain PartyPayment.
func (m *PartyPaymentModel) ToDomain() *payment.PartyPayment {
	pp := &payment.PartyPayment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PartyID:           m.PartyID,
		Amount:            m.Amount,
		PaymentDate:       m.PaymentDate,
		Method:            m.Method,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
		Status:            m.Status,
		ReversedAt:        m.ReversedAt,
		ReversedBy:        m.ReversedBy,
		ReverseReason:     m.ReverseReason,
		CreditAdded:       m.CreditAdded,
	}
	for i := range m.Allocations {
		pp.Allocations = append(pp.Allocations, *m.Allocations[i].ToDomain())
	}
	return pp
}

// FromDomain populates the persistence model from a domain PartyPayment.
func (m *PartyPaymentModel) FromDomain(p *payment.PartyPayment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PartyID = p.PartyID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.Method = p.Method
	m.Notes = p.Notes
	m.CreatedBy = p.CreatedBy
	m.Status = p.Status
	m.ReversedAt = p.ReversedAt
	m.ReversedBy = p.ReversedBy
	m.ReverseReason = p.ReverseReason
	m.CreditAdded = p.CreditAdded
	m.Allocations = make([]AllocationModel, len(p.Allocations))
	for i := range p.Allocations {
		m.Allocations[i].FromDomain(&p.Allocations[i])
	}
}

// PartyPaymentModelFromDomain creates a new persistence model from a
// domain PartyPayment.
func PartyPaymentModelFromDomain(p *payment.PartyPayment) *PartyPaymentModel {
	m := &PartyPaymentModel{}
	m.FromDomain(p)
	return m
}

// AllocationModel is the persistence model for payment allocations.
// Rows are written once at allocation time and never updated.
type AllocationModel struct {
	BaseModel
	PartyPaymentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (AllocationModel) TableName() string {
	return "payment_allocations"
}

// ToDomain converts the persistence model to a domain Allocation.
func (m *AllocationModel) ToDomain() *payment.Allocation {
	return &payment.Allocation{
		BaseEntity:     m.BaseModel.ToDomain(),
		PartyPaymentID: m.PartyPaymentID,
		SellItemID:     m.SellItemID,
		Amount:         m.Amount,
	}
}

// FromDomain populates the persistence model from a domain Allocation.
func (m *AllocationModel) FromDomain(a *payment.Allocation) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.PartyPaymentID = a.PartyPaymentID
	m.SellItemID = a.SellItemID
	m.Amount = a.Amount
}
