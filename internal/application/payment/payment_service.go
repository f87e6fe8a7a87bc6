package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentService records direct payments against individual sell items
// and recomputes their balances. This is the direct-payment path: the
// received total is always re-derived from the remaining payment rows,
// and an overpayment is not clamped, so a sell item's balance may go
// negative here. Lump-sum payments go through PartyPaymentService.
type PaymentService struct {
	scope     TransactionScope
	publisher shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope TransactionScope, publisher shared.EventPublisher) *PaymentService {
	return &PaymentService{
		scope:     scope,
		publisher: publisher,
	}
}

// RecordPayment records a payment against one sell item and recomputes
// that item's received total and balance from the payment rows.
func (s *PaymentService) RecordPayment(
	ctx context.Context,
	sellItemID uuid.UUID,
	amount decimal.Decimal,
	paymentDate time.Time,
	method payment.Method,
	notes string,
	actor shared.Actor,
) (*RecordPaymentResult, error) {
	created, err := payment.NewPayment(sellItemID, amount, paymentDate, method, notes, actor.ID)
	if err != nil {
		return nil, err
	}

	var result RecordPaymentResult
	var events []shared.DomainEvent

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.Transactions().FindSellItemByID(ctx, sellItemID)
		if err != nil {
			return err
		}

		if err := repos.Payments().Create(ctx, created); err != nil {
			return err
		}

		received, err := repos.Payments().SumBySellItemID(ctx, sellItemID)
		if err != nil {
			return err
		}
		item.SetPaymentReceived(received)
		if err := repos.Transactions().SaveSellItem(ctx, item); err != nil {
			return err
		}

		tx, err := repos.Transactions().FindByID(ctx, item.TransactionID)
		if err != nil {
			return err
		}
		party, err := repos.Parties().FindByID(ctx, tx.PartyID)
		if err != nil {
			return err
		}

		result = RecordPaymentResult{
			Payment:         ToPaymentResponse(created),
			PaymentReceived: item.PaymentReceived,
			BalanceLeft:     item.BalanceLeft,
		}
		events = append(events, payment.NewPaymentRecordedEvent(created, party.ID, party.Name))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort only; notification must never fail the recorded payment.
	_ = s.publisher.Publish(ctx, events...)

	return &result, nil
}

// ListPayments returns the payments recorded against a sell item,
// most recent first
func (s *PaymentService) ListPayments(ctx context.Context, sellItemID uuid.UUID) ([]PaymentResponse, error) {
	var responses []PaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Transactions().FindSellItemByID(ctx, sellItemID); err != nil {
			return err
		}
		payments, err := repos.Payments().FindBySellItemID(ctx, sellItemID)
		if err != nil {
			return err
		}
		responses = ToPaymentResponses(payments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// DeletePayment hard-deletes a direct payment and recomputes the owning
// sell item's balance from the remaining rows. Admin only.
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID, actor shared.Actor) (*DeletePaymentResult, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	var result DeletePaymentResult
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		deleted, err := repos.Payments().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		item, err := repos.Transactions().FindSellItemByID(ctx, deleted.SellItemID)
		if err != nil {
			return err
		}

		if err := repos.Payments().Delete(ctx, paymentID); err != nil {
			return err
		}

		received, err := repos.Payments().SumBySellItemID(ctx, deleted.SellItemID)
		if err != nil {
			return err
		}
		item.SetPaymentReceived(received)
		if err := repos.Transactions().SaveSellItem(ctx, item); err != nil {
			return err
		}

		result = DeletePaymentResult{
			SellItemID:      item.ID,
			PaymentReceived: item.PaymentReceived,
			BalanceLeft:     item.BalanceLeft,
		}
		events = append(events, payment.NewPaymentDeletedEvent(deleted, actor.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, events...)

	return &result, nil
}
