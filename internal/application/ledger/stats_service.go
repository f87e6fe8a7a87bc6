package ledger

import (
	"context"

	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/ledgerbook/backend/internal/domain/payment"
)

// StatsService produces the business-wide aggregate view
type StatsService struct {
	transactionRepo  ledger.TransactionRepository
	partyPaymentRepo payment.PartyPaymentRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(transactionRepo ledger.TransactionRepository, partyPaymentRepo payment.PartyPaymentRepository) *StatsService {
	return &StatsService{
		transactionRepo:  transactionRepo,
		partyPaymentRepo: partyPaymentRepo,
	}
}

// GetLedgerStats aggregates selling, received and outstanding totals
// across all sell items plus the active party payment count
func (s *StatsService) GetLedgerStats(ctx context.Context) (*LedgerStatsResponse, error) {
	totalSelling, totalReceived, balanceLeft, err := s.transactionRepo.LedgerTotals(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.partyPaymentRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &LedgerStatsResponse{
		TotalSelling:       totalSelling,
		TotalReceived:      totalReceived,
		BalanceLeft:        balanceLeft,
		PartyPaymentsCount: count,
	}, nil
}
