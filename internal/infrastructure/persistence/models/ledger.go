package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// PartyModel is the persistence model for the Party domain entity.
type PartyModel struct {
	AggregateModel
	Name          string          `gorm:"type:varchar(200);not null;index"`
	ContactName   string          `gorm:"type:varchar(100)"`
	Phone         string          `gorm:"type:varchar(50);index"`
	Email         string          `gorm:"type:varchar(200)"`
	Address       string          `gorm:"type:text"`
	Notes         string          `gorm:"type:text"`
	CreditBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PartyModel) TableName() string {
	return "parties"
}

// ToDomain converts the persistence model to a domain Party entity.
func (m *PartyModel) ToDomain() *ledger.Party {
	return &ledger.Party{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		ContactName:       m.ContactName,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		Notes:             m.Notes,
		CreditBalance:     m.CreditBalance,
	}
}

// FromDomain populates the persistence model from a domain Party entity.
func (m *PartyModel) FromDomain(p *ledger.Party) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.ContactName = p.ContactName
	m.Phone = p.Phone
	m.Email = p.Email
	m.Address = p.Address
	m.Notes = p.Notes
	m.CreditBalance = p.CreditBalance
}

// PartyModelFromDomain creates a new persistence model from a domain Party.
func PartyModelFromDomain(p *ledger.Party) *PartyModel {
	m := &PartyModel{}
	m.FromDomain(p)
	return m
}

// TransactionModel is the persistence model for the Transaction entity.
type TransactionModel struct {
	AggregateModel
	Kind        ledger.TransactionKind `gorm:"type:varchar(10);not null;index"`
	PartyID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	Date        time.Time              `gorm:"not null;index"`
	TotalWeight decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Notes       string                 `gorm:"type:text"`

	SellItems []SellItemModel `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	BuyItems  []BuyItemModel  `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	tx := &ledger.Transaction{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Kind:              m.Kind,
		PartyID:           m.PartyID,
		Date:              m.Date,
		TotalWeight:       m.TotalWeight,
		TotalAmount:       m.TotalAmount,
		Notes:             m.Notes,
	}
	for i := range m.SellItems {
		item := m.SellItems[i].ToDomain()
		item.TransactionDate = m.Date
		tx.SellItems = append(tx.SellItems, *item)
	}
	for i := range m.BuyItems {
		tx.BuyItems = append(tx.BuyItems, *m.BuyItems[i].ToDomain())
	}
	return tx
}

// FromDomain populates the persistence model from a domain Transaction.
func (m *TransactionModel) FromDomain(t *ledger.Transaction) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Kind = t.Kind
	m.PartyID = t.PartyID
	m.Date = t.Date
	m.TotalWeight = t.TotalWeight
	m.TotalAmount = t.TotalAmount
	m.Notes = t.Notes
	m.SellItems = make([]SellItemModel, len(t.SellItems))
	for i := range t.SellItems {
		m.SellItems[i].FromDomain(&t.SellItems[i])
	}
	m.BuyItems = make([]BuyItemModel, len(t.BuyItems))
	for i := range t.BuyItems {
		m.BuyItems[i].FromDomain(&t.BuyItems[i])
	}
}

// TransactionModelFromDomain creates a new persistence model from a
// domain Transaction.
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}

// SellItemModel is the persistence model for SellItem.
type SellItemModel struct {
	BaseModel
	TransactionID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description     string          `gorm:"type:varchar(200)"`
	Weight          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentReceived decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceLeft     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Version         int             `gorm:"not null;default:1"`

	// TransactionDate is filled by joined reads for FIFO ordering; it
	// is not a column on sell_items.
	TransactionDate time.Time `gorm:"-"`
}

// TableName returns the table name for GORM
func (SellItemModel) TableName() string {
	return "sell_items"
}

// ToDomain converts the persistence model to a domain SellItem.
func (m *SellItemModel) ToDomain() *ledger.SellItem {
	return &ledger.SellItem{
		BaseEntity:      m.BaseModel.ToDomain(),
		TransactionID:   m.TransactionID,
		Description:     m.Description,
		Weight:          m.Weight,
		TotalAmount:     m.TotalAmount,
		PaymentReceived: m.PaymentReceived,
		BalanceLeft:     m.BalanceLeft,
		Version:         m.Version,
		TransactionDate: m.TransactionDate,
	}
}

// FromDomain populates the persistence model from a domain SellItem.
func (m *SellItemModel) FromDomain(s *ledger.SellItem) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.TransactionID = s.TransactionID
	m.Description = s.Description
	m.Weight = s.Weight
	m.TotalAmount = s.TotalAmount
	m.PaymentReceived = s.PaymentReceived
	m.BalanceLeft = s.BalanceLeft
	m.Version = s.Version
}

// SellItemModelFromDomain creates a new persistence model from a domain
// SellItem.
func SellItemModelFromDomain(s *ledger.SellItem) *SellItemModel {
	m := &SellItemModel{}
	m.FromDomain(s)
	return m
}

// BuyItemModel is the persistence model for BuyItem.
type BuyItemModel struct {
	BaseModel
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string          `gorm:"type:varchar(200)"`
	Weight        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (BuyItemModel) TableName() string {
	return "buy_items"
}

// ToDomain converts the persistence model to a domain BuyItem.
func (m *BuyItemModel) ToDomain() *ledger.BuyItem {
	return &ledger.BuyItem{
		BaseEntity:    m.BaseModel.ToDomain(),
		TransactionID: m.TransactionID,
		Description:   m.Description,
		Weight:        m.Weight,
		TotalAmount:   m.TotalAmount,
	}
}

// FromDomain populates the persistence model from a domain BuyItem.
func (m *BuyItemModel) FromDomain(b *ledger.BuyItem) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.TransactionID = b.TransactionID
	m.Description = b.Description
	m.Weight = b.Weight
	m.TotalAmount = b.TotalAmount
}
