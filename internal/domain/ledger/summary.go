package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartySummary aggregates a party's position across all of its
// transactions. TotalReceived sums the sell items' PaymentReceived
// fields rather than raw payment rows, so direct payments and
// allocations are never double counted.
type PartySummary struct {
	BuyingTotal      decimal.Decimal
	SellingTotal     decimal.Decimal
	TotalReceived    decimal.Decimal
	BalanceOwed      decimal.Decimal
	CreditBalance    decimal.Decimal
	TransactionCount int
	LastPayment      *time.Time
}

// ComputeBalance returns the outstanding balance of a sell item.
// Pure; identical inputs always produce identical results.
func ComputeBalance(item *SellItem) decimal.Decimal {
	return item.TotalAmount.Sub(item.PaymentReceived)
}

// ComputePartySummary derives a party's aggregate summary from its
// persisted transactions. Pure and side-effect-free; the LastPayment
// field is left for the caller to fill from the payment store.
func ComputePartySummary(party *Party, transactions []Transaction) PartySummary {
	summary := PartySummary{
		BuyingTotal:   decimal.Zero,
		SellingTotal:  decimal.Zero,
		TotalReceived: decimal.Zero,
		CreditBalance: party.CreditBalance,
	}

	for i := range transactions {
		tx := &transactions[i]
		summary.TransactionCount++
		switch tx.Kind {
		case TransactionKindBuy:
			summary.BuyingTotal = summary.BuyingTotal.Add(tx.TotalAmount)
		case TransactionKindSell:
			summary.SellingTotal = summary.SellingTotal.Add(tx.TotalAmount)
			for j := range tx.SellItems {
				summary.TotalReceived = summary.TotalReceived.Add(tx.SellItems[j].PaymentReceived)
			}
		}
	}

	summary.BalanceOwed = summary.SellingTotal.Sub(summary.TotalReceived)
	return summary
}
