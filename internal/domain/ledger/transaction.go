package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes buying from selling transactions
type TransactionKind string

const (
	TransactionKindBuy  TransactionKind = "buy"
	TransactionKindSell TransactionKind = "sell"
)

// Transaction represents one buy or sell deal with a party. A sell
// transaction owns SellItems, a buy transaction owns BuyItems; the two
// are mutually exclusive by kind.
type Transaction struct {
	shared.BaseAggregateRoot
	Kind        TransactionKind
	PartyID     uuid.UUID
	Date        time.Time
	TotalWeight decimal.Decimal
	TotalAmount decimal.Decimal
	Notes       string
	SellItems   []SellItem
	BuyItems    []BuyItem
}

// NewTransaction creates a new transaction header
func NewTransaction(kind TransactionKind, partyID uuid.UUID, date time.Time) (*Transaction, error) {
	if kind != TransactionKindBuy && kind != TransactionKindSell {
		return nil, shared.NewDomainError("INVALID_KIND", "Transaction kind must be buy or sell")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Transaction requires a party")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction requires a date")
	}

	return &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		PartyID:           partyID,
		Date:              date,
		TotalWeight:       decimal.Zero,
		TotalAmount:       decimal.Zero,
	}, nil
}

// AddSellItem appends a sell line item and updates the aggregate totals
func (t *Transaction) AddSellItem(description string, weight, totalAmount decimal.Decimal) (*SellItem, error) {
	if t.Kind != TransactionKindSell {
		return nil, shared.NewDomainError("INVALID_KIND", "Cannot add sell items to a buy transaction")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Item amount must be positive")
	}

	item := SellItem{
		BaseEntity:      shared.NewBaseEntity(),
		TransactionID:   t.ID,
		Description:     description,
		Weight:          weight,
		TotalAmount:     totalAmount,
		PaymentReceived: decimal.Zero,
		BalanceLeft:     totalAmount,
		Version:         1,
	}
	t.SellItems = append(t.SellItems, item)
	t.TotalAmount = t.TotalAmount.Add(totalAmount)
	t.TotalWeight = t.TotalWeight.Add(weight)
	t.UpdatedAt = time.Now()
	return &t.SellItems[len(t.SellItems)-1], nil
}

// AddBuyItem appends a buy line item and updates the aggregate totals
func (t *Transaction) AddBuyItem(description string, weight, totalAmount decimal.Decimal) (*BuyItem, error) {
	if t.Kind != TransactionKindBuy {
		return nil, shared.NewDomainError("INVALID_KIND", "Cannot add buy items to a sell transaction")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Item amount must be positive")
	}

	item := BuyItem{
		BaseEntity:    shared.NewBaseEntity(),
		TransactionID: t.ID,
		Description:   description,
		Weight:        weight,
		TotalAmount:   totalAmount,
	}
	t.BuyItems = append(t.BuyItems, item)
	t.TotalAmount = t.TotalAmount.Add(totalAmount)
	t.TotalWeight = t.TotalWeight.Add(weight)
	t.UpdatedAt = time.Now()
	return &t.BuyItems[len(t.BuyItems)-1], nil
}

// SellItem is the unit the allocation engine operates on: one sellable
// obligation with its own payment and balance tracking.
//
// The invariant BalanceLeft == TotalAmount - PaymentReceived holds at
// every observation point; all mutators below maintain it. BalanceLeft
// may go negative on the direct-payment path: recording a payment larger
// than the remaining balance is not clamped.
type SellItem struct {
	shared.BaseEntity
	TransactionID   uuid.UUID
	Description     string
	Weight          decimal.Decimal
	TotalAmount     decimal.Decimal
	PaymentReceived decimal.Decimal
	BalanceLeft     decimal.Decimal
	Version         int

	// TransactionDate is the owning transaction's date, populated on
	// reads that need FIFO ordering. Not persisted on the item itself.
	TransactionDate time.Time
}

// ApplyAllocation applies part of a party payment to this item. The
// amount must not exceed the remaining balance; the FIFO engine
// guarantees this by construction.
func (s *SellItem) ApplyAllocation(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if amount.GreaterThan(s.BalanceLeft) {
		return shared.NewDomainError("OVER_ALLOCATION", "Allocation exceeds the item's remaining balance")
	}
	s.PaymentReceived = s.PaymentReceived.Add(amount)
	s.BalanceLeft = s.TotalAmount.Sub(s.PaymentReceived)
	s.UpdatedAt = time.Now()
	s.Version++
	return nil
}

// ReverseAllocation undoes a previously applied allocation
func (s *SellItem) ReverseAllocation(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	s.PaymentReceived = s.PaymentReceived.Sub(amount)
	s.BalanceLeft = s.TotalAmount.Sub(s.PaymentReceived)
	s.UpdatedAt = time.Now()
	s.Version++
	return nil
}

// SetPaymentReceived recomputes the balance from the full sum of direct
// payment rows. Used by the direct recorder, which derives the received
// total from the payment table rather than incrementing it.
func (s *SellItem) SetPaymentReceived(total decimal.Decimal) {
	s.PaymentReceived = total
	s.BalanceLeft = s.TotalAmount.Sub(total)
	s.UpdatedAt = time.Now()
	s.Version++
}

// HasBalance reports whether any obligation remains open on this item
func (s *SellItem) HasBalance() bool {
	return s.BalanceLeft.GreaterThan(decimal.Zero)
}

// BuyItem is a line item of a buying transaction. Buy items carry no
// payment tracking; they only contribute to the party's buying total.
type BuyItem struct {
	shared.BaseEntity
	TransactionID uuid.UUID
	Description   string
	Weight        decimal.Decimal
	TotalAmount   decimal.Decimal
}
