package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// PartyResponse is the application-level view of a party
type PartyResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	ContactName   string          `json:"contact_name,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	Address       string          `json:"address,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SellItemResponse is the view of a sell line item
type SellItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	Description     string          `json:"description,omitempty"`
	Weight          decimal.Decimal `json:"weight"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentReceived decimal.Decimal `json:"payment_received"`
	BalanceLeft     decimal.Decimal `json:"balance_left"`
}

// BuyItemResponse is the view of a buy line item
type BuyItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description,omitempty"`
	Weight      decimal.Decimal `json:"weight"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// TransactionResponse is the view of a transaction with its items
type TransactionResponse struct {
	ID          uuid.UUID              `json:"id"`
	Kind        ledger.TransactionKind `json:"kind"`
	PartyID     uuid.UUID              `json:"party_id"`
	Date        time.Time              `json:"date"`
	TotalWeight decimal.Decimal        `json:"total_weight"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	Notes       string                 `json:"notes,omitempty"`
	SellItems   []SellItemResponse     `json:"sell_items,omitempty"`
	BuyItems    []BuyItemResponse      `json:"buy_items,omitempty"`
}

// PartySummaryResponse is the party's aggregate position
type PartySummaryResponse struct {
	BuyingTotal      decimal.Decimal `json:"buying_total"`
	SellingTotal     decimal.Decimal `json:"selling_total"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	BalanceOwed      decimal.Decimal `json:"balance_owed"`
	CreditBalance    decimal.Decimal `json:"credit_balance"`
	TransactionCount int             `json:"transaction_count"`
	LastPayment      *time.Time      `json:"last_payment,omitempty"`
}

// PartyPaymentView is the trimmed view of a lump-sum payment embedded
// in the party detail
type PartyPaymentView struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Notes       string          `json:"notes,omitempty"`
	CreditAdded decimal.Decimal `json:"credit_added"`
}

// PartyDetailResponse combines the party, its transactions, payments
// and summary
type PartyDetailResponse struct {
	Party         PartyResponse         `json:"party"`
	Transactions  []TransactionResponse `json:"transactions"`
	PartyPayments []PartyPaymentView    `json:"party_payments"`
	Summary       PartySummaryResponse  `json:"summary"`
}

// LedgerStatsResponse is the business-wide aggregate view
type LedgerStatsResponse struct {
	TotalSelling       decimal.Decimal `json:"total_selling"`
	TotalReceived      decimal.Decimal `json:"total_received"`
	BalanceLeft        decimal.Decimal `json:"balance_left"`
	PartyPaymentsCount int64           `json:"party_payments_count"`
}

// ToPartyResponse maps a domain party to its response form
func ToPartyResponse(p *ledger.Party) PartyResponse {
	return PartyResponse{
		ID:            p.ID,
		Name:          p.Name,
		ContactName:   p.ContactName,
		Phone:         p.Phone,
		Email:         p.Email,
		Address:       p.Address,
		Notes:         p.Notes,
		CreditBalance: p.CreditBalance,
		CreatedAt:     p.CreatedAt,
	}
}

// ToTransactionResponse maps a domain transaction with its items
func ToTransactionResponse(t *ledger.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID,
		Kind:        t.Kind,
		PartyID:     t.PartyID,
		Date:        t.Date,
		TotalWeight: t.TotalWeight,
		TotalAmount: t.TotalAmount,
		Notes:       t.Notes,
	}
	for i := range t.SellItems {
		item := &t.SellItems[i]
		resp.SellItems = append(resp.SellItems, SellItemResponse{
			ID:              item.ID,
			Description:     item.Description,
			Weight:          item.Weight,
			TotalAmount:     item.TotalAmount,
			PaymentReceived: item.PaymentReceived,
			BalanceLeft:     item.BalanceLeft,
		})
	}
	for i := range t.BuyItems {
		item := &t.BuyItems[i]
		resp.BuyItems = append(resp.BuyItems, BuyItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Weight:      item.Weight,
			TotalAmount: item.TotalAmount,
		})
	}
	return resp
}

// ToPartySummaryResponse maps a computed summary
func ToPartySummaryResponse(s ledger.PartySummary) PartySummaryResponse {
	return PartySummaryResponse{
		BuyingTotal:      s.BuyingTotal,
		SellingTotal:     s.SellingTotal,
		TotalReceived:    s.TotalReceived,
		BalanceOwed:      s.BalanceOwed,
		CreditBalance:    s.CreditBalance,
		TransactionCount: s.TransactionCount,
		LastPayment:      s.LastPayment,
	}
}
