package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// PartyService exposes the party read model and minimal party
// management. Balance math is delegated to the pure functions in the
// ledger domain; this service only assembles persisted state.
type PartyService struct {
	partyRepo        ledger.PartyRepository
	transactionRepo  ledger.TransactionRepository
	partyPaymentRepo payment.PartyPaymentRepository
}

// NewPartyService creates a new PartyService
func NewPartyService(
	partyRepo ledger.PartyRepository,
	transactionRepo ledger.TransactionRepository,
	partyPaymentRepo payment.PartyPaymentRepository,
) *PartyService {
	return &PartyService{
		partyRepo:        partyRepo,
		transactionRepo:  transactionRepo,
		partyPaymentRepo: partyPaymentRepo,
	}
}

// CreateParty registers a new trading party
func (s *PartyService) CreateParty(ctx context.Context, name, contactName, phone, email, address, notes string) (*PartyResponse, error) {
	party, err := ledger.NewParty(name)
	if err != nil {
		return nil, err
	}
	party.SetContact(contactName, phone, email)
	party.Address = address
	party.Notes = notes

	if err := s.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}

	response := ToPartyResponse(party)
	return &response, nil
}

// GetParty returns one party's basic fields
func (s *PartyService) GetParty(ctx context.Context, id uuid.UUID) (*PartyResponse, error) {
	party, err := s.partyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPartyResponse(party)
	return &response, nil
}

// ListParties lists parties with pagination
func (s *PartyService) ListParties(ctx context.Context, filter shared.Filter) ([]PartyResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	parties, total, err := s.partyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PartyResponse, len(parties))
	for i := range parties {
		responses[i] = ToPartyResponse(&parties[i])
	}
	return responses, total, nil
}

// GetPartyDetail returns the party with its transactions, payments and
// computed summary
func (s *PartyService) GetPartyDetail(ctx context.Context, id uuid.UUID) (*PartyDetailResponse, error) {
	party, err := s.partyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.FindByPartyID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := ledger.ComputePartySummary(party, transactions)

	lastPayment, err := s.partyPaymentRepo.LastPaymentDate(ctx, id)
	if err != nil {
		return nil, err
	}
	summary.LastPayment = lastPayment

	partyPayments, err := s.partyPaymentRepo.FindByPartyID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &PartyDetailResponse{
		Party:   ToPartyResponse(party),
		Summary: ToPartySummaryResponse(summary),
	}
	for i := range transactions {
		detail.Transactions = append(detail.Transactions, ToTransactionResponse(&transactions[i]))
	}
	for i := range partyPayments {
		pp := &partyPayments[i]
		detail.PartyPayments = append(detail.PartyPayments, PartyPaymentView{
			ID:          pp.ID,
			Amount:      pp.Amount,
			PaymentDate: pp.PaymentDate,
			Method:      string(pp.Method),
			Notes:       pp.Notes,
			CreditAdded: pp.CreditAdded,
		})
	}
	return detail, nil
}
