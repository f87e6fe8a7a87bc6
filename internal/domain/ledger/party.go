package ledger

import (
	"strings"
	"time"

	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Party represents a customer or vendor the business trades with.
// It is the aggregate root for party-related operations.
//
// CreditBalance is the running total of unallocated funds from
// overpayments. It is mutated only by the allocation and reversal
// engines and is never applied automatically to new obligations.
type Party struct {
	shared.BaseAggregateRoot
	Name          string
	ContactName   string
	Phone         string
	Email         string
	Address       string
	Notes         string
	CreditBalance decimal.Decimal
}

// NewParty creates a new party with required fields
func NewParty(name string) (*Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PARTY_NAME", "Party name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PARTY_NAME", "Party name cannot exceed 200 characters")
	}

	return &Party{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CreditBalance:     decimal.Zero,
	}, nil
}

// SetContact sets the party's contact information
func (p *Party) SetContact(contactName, phone, email string) {
	p.ContactName = contactName
	p.Phone = phone
	p.Email = email
	p.UpdatedAt = time.Now()
}

// AddCredit banks unallocated funds against the party
func (p *Party) AddCredit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	p.CreditBalance = p.CreditBalance.Add(amount)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// DeductCredit removes previously banked credit, used when a party
// payment that produced the credit is reversed
func (p *Party) DeductCredit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	p.CreditBalance = p.CreditBalance.Sub(amount)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
