package payment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

func TestRecordPayment(t *testing.T) {
	t.Run("records payment and recomputes balance", func(t *testing.T) {
		f := newEngineFixture(t)
		party := f.createParty(t, "Acme Traders")
		item := f.createSellItem(t, party.ID, day(1), 500)

		result, err := f.paymentService.RecordPayment(
			context.Background(), item.ID, decimal.NewFromInt(200), day(2), payment.MethodCheque, "cheque #12", staff)
		require.NoError(t, err)

		assert.Equal(t, item.ID, result.Payment.SellItemID)
		assert.True(t, result.PaymentReceived.Equal(decimal.NewFromInt(200)))
		assert.True(t, result.BalanceLeft.Equal(decimal.NewFromInt(300)))
		assert.True(t, f.sellItem(t, item.ID).BalanceLeft.Equal(decimal.NewFromInt(300)))
	})

	t.Run("received total is derived from all payment rows", func(t *testing.T) {
		f := newEngineFixture(t)
		party := f.createParty(t, "Acme Traders")
		item := f.createSellItem(t, party.ID, day(1), 500)

		_, err := f.paymentService.RecordPayment(
			context.Background(), item.ID, decimal.NewFromInt(200), day(2), payment.MethodCash, "", staff)
		require.NoError(t, err)
		result, err := f.paymentService.RecordPayment(
			context.Background(), item.ID, decimal.NewFromInt(150), day(3), payment.MethodCash, "", staff)
		require.NoError(t, err)

		assert.True(t, result.PaymentReceived.Equal(decimal.NewFromInt(350)))
		assert.True(t, result.BalanceLeft.Equal(decimal.NewFromInt(150)))
	})

	t.Run("overpayment is not clamped", func(t *testing.T) {
		f := newEngineFixture(t)
		party := f.createParty(t, "Acme Traders")
		item := f.createSellItem(t, party.ID, day(1), 100)

		result, err := f.paymentService.RecordPayment(
			context.Background(), item.ID, decimal.NewFromInt(160), day(2), payment.MethodCash, "", staff)
		require.NoError(t, err)

		assert.True(t, result.BalanceLeft.Equal(decimal.NewFromInt(-60)))

		// The overpaid item no longer has an open balance, so a later
		// lump-sum payment passes it by.
		allocated, err := f.partyPaymentService.CreatePartyPayment(
			context.Background(), party.ID, decimal.NewFromInt(50), day(3), payment.MethodCash, "", staff)
		require.NoError(t, err)
		assert.Equal(t, 0, allocated.AllocationsCount)
		assert.True(t, allocated.CreditAdded.Equal(decimal.NewFromInt(50)))
	})

	t.Run("leaves sibling items and party credit untouched", func(t *testing.T) {
		f := newEngineFixture(t)
		party := f.createParty(t, "Acme Traders")
		target := f.createSellItem(t, party.ID, day(1), 100)
		sibling := f.createSellItem(t, party.ID, day(2), 200)

		_, err := f.paymentService.RecordPayment(
			context.Background(), target.ID, decimal.NewFromInt(40), day(3), payment.MethodCash, "", staff)
		require.NoError(t, err)

		assert.True(t, f.sellItem(t, target.ID).BalanceLeft.Equal(decimal.NewFromInt(60)))

		after := f.sellItem(t, sibling.ID)
		assert.True(t, after.PaymentReceived.IsZero())
		assert.True(t, after.BalanceLeft.Equal(decimal.NewFromInt(200)))
		assert.True(t, f.party(t, party.ID).CreditBalance.IsZero())
	})

	t.Run("fails for unknown sell item", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.paymentService.RecordPayment(
			context.Background(), uuid.New(), decimal.NewFromInt(10), day(1), payment.MethodCash, "", staff)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newEngineFixture(t)
		party := f.createParty(t, "Acme Traders")
		item := f.createSellItem(t, party.ID, day(1), 100)

		_, err := f.paymentService.RecordPayment(
			context.Background(), item.ID, decimal.Zero, day(2), payment.MethodCash, "", staff)
		require.Error(t, err)
	})
}

func TestListPayments(t *testing.T) {
	f := newEngineFixture(t)
	party := f.createParty(t, "Acme Traders")
	item := f.createSellItem(t, party.ID, day(1), 500)

	_, err := f.paymentService.RecordPayment(
		context.Background(), item.ID, decimal.NewFromInt(100), day(2), payment.MethodCash, "", staff)
	require.NoError(t, err)
	_, err = f.paymentService.RecordPayment(
		context.Background(), item.ID, decimal.NewFromInt(50), day(5), payment.MethodBank, "", staff)
	require.NoError(t, err)

	payments, err := f.paymentService.ListPayments(context.Background(), item.ID)
	require.NoError(t, err)

	require.Len(t, payments, 2)
	assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(50)))
	assert.True(t, payments[1].Amount.Equal(decimal.NewFromInt(100)))
}

func TestDeletePayment(t *testing.T) {
	t.Run("delete recomputes balance from remaining rows", func(t *testing.T) {
		f := newEngineFixture(t)
		party := f.createParty(t, "Acme Traders")
		item := f.createSellItem(t, party.ID, day(1), 500)

		first, err := f.paymentService.RecordPayment(
			context.Background(), item.ID, decimal.NewFromInt(200), day(2), payment.MethodCash, "", staff)
		require.NoError(t, err)
		_, err = f.paymentService.RecordPayment(
			context.Background(), item.ID, decimal.NewFromInt(100), day(3), payment.MethodCash, "", staff)
		require.NoError(t, err)

		result, err := f.paymentService.DeletePayment(context.Background(), first.Payment.ID, admin)
		require.NoError(t, err)

		assert.True(t, result.PaymentReceived.Equal(decimal.NewFromInt(100)))
		assert.True(t, result.BalanceLeft.Equal(decimal.NewFromInt(400)))

		payments, err := f.paymentService.ListPayments(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Len(t, payments, 1)
	})

	t.Run("rejects non-admin actors", func(t *testing.T) {
		f := newEngineFixture(t)
		party := f.createParty(t, "Acme Traders")
		item := f.createSellItem(t, party.ID, day(1), 100)

		created, err := f.paymentService.RecordPayment(
			context.Background(), item.ID, decimal.NewFromInt(50), day(2), payment.MethodCash, "", staff)
		require.NoError(t, err)

		_, err = f.paymentService.DeletePayment(context.Background(), created.Payment.ID, staff)
		require.ErrorIs(t, err, shared.ErrForbidden)

		// The rejected delete must not touch the item or its payments.
		after := f.sellItem(t, item.ID)
		assert.True(t, after.PaymentReceived.Equal(decimal.NewFromInt(50)))
		assert.True(t, after.BalanceLeft.Equal(decimal.NewFromInt(50)))

		payments, err := f.paymentService.ListPayments(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Len(t, payments, 1)
	})

	t.Run("fails for unknown payment", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.paymentService.DeletePayment(context.Background(), uuid.New(), admin)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}
