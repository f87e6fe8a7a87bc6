package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartyPaymentService is the allocation and reversal engine for
// lump-sum party payments. A created payment is walked across the
// party's open sell items oldest transaction first; whatever cannot be
// allocated is banked as party credit. Reversal restores every touched
// item and reconciles the credit, leaving the payment and its
// allocations behind as historical records.
//
// Both operations run inside a single TransactionScope so that the
// conservation invariant sum(allocations) + credit == amount can never
// be observed broken.
type PartyPaymentService struct {
	scope     TransactionScope
	publisher shared.EventPublisher
}

// NewPartyPaymentService creates a new PartyPaymentService
func NewPartyPaymentService(scope TransactionScope, publisher shared.EventPublisher) *PartyPaymentService {
	return &PartyPaymentService{
		scope:     scope,
		publisher: publisher,
	}
}

// CreatePartyPayment records a lump-sum payment and allocates it across
// the party's outstanding sell items, oldest obligation first. Each
// allocation takes min(remaining, item balance); the walk stops when the
// payment is exhausted. Any residue is added to the party's credit
// balance. Re-submitting an identical request creates a second,
// independent payment; the engine does not deduplicate.
func (s *PartyPaymentService) CreatePartyPayment(
	ctx context.Context,
	partyID uuid.UUID,
	amount decimal.Decimal,
	paymentDate time.Time,
	method payment.Method,
	notes string,
	actor shared.Actor,
) (*CreatePartyPaymentResult, error) {
	created, err := payment.NewPartyPayment(partyID, amount, paymentDate, method, notes, actor.ID)
	if err != nil {
		return nil, err
	}

	var result CreatePartyPaymentResult
	var events []shared.DomainEvent

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		party, err := repos.Parties().FindByID(ctx, partyID)
		if err != nil {
			return err
		}

		items, err := repos.Transactions().FindOpenSellItemsByParty(ctx, partyID)
		if err != nil {
			return err
		}

		remaining := amount
		for i := range items {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			item := &items[i]

			allocatable := decimal.Min(remaining, item.BalanceLeft)
			if allocatable.LessThanOrEqual(decimal.Zero) {
				continue
			}

			if _, err := created.AddAllocation(item.ID, allocatable); err != nil {
				return err
			}
			if err := item.ApplyAllocation(allocatable); err != nil {
				return err
			}
			if err := repos.Transactions().SaveSellItem(ctx, item); err != nil {
				return err
			}
			remaining = remaining.Sub(allocatable)
		}

		if remaining.GreaterThan(decimal.Zero) {
			created.BankCredit(remaining)
			if err := party.AddCredit(remaining); err != nil {
				return err
			}
			if err := repos.Parties().SaveWithLock(ctx, party); err != nil {
				return err
			}
		}

		if err := repos.PartyPayments().Create(ctx, created); err != nil {
			return err
		}

		result = CreatePartyPaymentResult{
			PartyPayment:     ToPartyPaymentResponse(created),
			AllocationsCount: len(created.Allocations),
			CreditAdded:      created.CreditAdded,
		}
		events = append(events, payment.NewPartyPaymentCreatedEvent(created, party.Name))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort only; notification must never fail the committed payment.
	_ = s.publisher.Publish(ctx, events...)

	return &result, nil
}

// ListPartyPayments returns a party's non-reversed payments, most
// recent first
func (s *PartyPaymentService) ListPartyPayments(ctx context.Context, partyID uuid.UUID) ([]PartyPaymentResponse, error) {
	var responses []PartyPaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Parties().FindByID(ctx, partyID); err != nil {
			return err
		}
		payments, err := repos.PartyPayments().FindByPartyID(ctx, partyID)
		if err != nil {
			return err
		}
		responses = ToPartyPaymentResponses(payments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// GetPartyPayment returns one party payment, reversed or not, with its
// allocations
func (s *PartyPaymentService) GetPartyPayment(ctx context.Context, id uuid.UUID) (*PartyPaymentResponse, error) {
	var response PartyPaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		pp, err := repos.PartyPayments().FindByID(ctx, id)
		if err != nil {
			return err
		}
		response = ToPartyPaymentResponse(pp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// DeletePartyPayment reverses a party payment: the payment is flagged
// reversed, every allocation's amount is restored to its sell item, and
// any credited residue is deducted from the party's credit balance.
// Allocation rows are untouched. Admin only; reversing twice fails with
// ErrAlreadyDeleted.
func (s *PartyPaymentService) DeletePartyPayment(ctx context.Context, partyPaymentID uuid.UUID, reason string, actor shared.Actor) (*ReversePartyPaymentResult, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	var result ReversePartyPaymentResult
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		pp, err := repos.PartyPayments().FindByID(ctx, partyPaymentID)
		if err != nil {
			return err
		}

		party, err := repos.Parties().FindByID(ctx, pp.PartyID)
		if err != nil {
			return err
		}

		creditPortion := pp.CreditPortion()

		if err := pp.MarkReversed(actor.ID, reason); err != nil {
			return err
		}

		for i := range pp.Allocations {
			alloc := &pp.Allocations[i]
			item, err := repos.Transactions().FindSellItemByID(ctx, alloc.SellItemID)
			if err != nil {
				return err
			}
			if err := item.ReverseAllocation(alloc.Amount); err != nil {
				return err
			}
			if err := repos.Transactions().SaveSellItem(ctx, item); err != nil {
				return err
			}
		}

		if creditPortion.GreaterThan(decimal.Zero) {
			if err := party.DeductCredit(creditPortion); err != nil {
				return err
			}
			if err := repos.Parties().SaveWithLock(ctx, party); err != nil {
				return err
			}
		}

		if err := repos.PartyPayments().Save(ctx, pp); err != nil {
			return err
		}

		result = ReversePartyPaymentResult{
			PartyPaymentID:   pp.ID,
			AllocationsCount: len(pp.Allocations),
			CreditReversed:   creditPortion,
		}
		events = append(events, payment.NewPartyPaymentReversedEvent(pp, party.Name, creditPortion, actor.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, events...)

	return &result, nil
}
