package payment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	sellItemID := uuid.New()
	actorID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("creates payment with valid inputs", func(t *testing.T) {
		p, err := NewPayment(sellItemID, decimal.RequireFromString("250.50"), date, MethodCheque, "cheque #441", actorID)
		require.NoError(t, err)

		assert.Equal(t, sellItemID, p.SellItemID)
		assert.True(t, p.Amount.Equal(decimal.RequireFromString("250.50")))
		assert.Equal(t, MethodCheque, p.Method)
		assert.Equal(t, actorID, p.CreatedBy)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("defaults method to cash", func(t *testing.T) {
		p, err := NewPayment(sellItemID, decimal.NewFromInt(100), date, "", "", actorID)
		require.NoError(t, err)
		assert.Equal(t, MethodCash, p.Method)
	})

	t.Run("fails without sell item", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, decimal.NewFromInt(100), date, MethodCash, "", actorID)
		require.Error(t, err)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		_, err := NewPayment(sellItemID, decimal.Zero, date, MethodCash, "", actorID)
		require.Error(t, err)
	})

	t.Run("fails without date", func(t *testing.T) {
		_, err := NewPayment(sellItemID, decimal.NewFromInt(100), time.Time{}, MethodCash, "", actorID)
		require.Error(t, err)
	})
}

func TestPaymentEvents(t *testing.T) {
	p, err := NewPayment(uuid.New(), decimal.NewFromInt(75), time.Now(), MethodCash, "", uuid.New())
	require.NoError(t, err)
	partyID := uuid.New()

	t.Run("recorded event carries payment context", func(t *testing.T) {
		event := NewPaymentRecordedEvent(p, partyID, "Acme Traders")

		assert.Equal(t, EventTypePaymentRecorded, event.EventType())
		assert.Equal(t, partyID, event.PartyID)
		assert.Equal(t, "Acme Traders", event.PartyName)
		assert.Equal(t, p.SellItemID, event.SellItemID)
		assert.True(t, event.Amount.Equal(p.Amount))
	})

	t.Run("deleted event records the acting admin", func(t *testing.T) {
		admin := uuid.New()
		event := NewPaymentDeletedEvent(p, admin)

		assert.Equal(t, EventTypePaymentDeleted, event.EventType())
		assert.Equal(t, admin, event.ActorID)
		assert.Equal(t, p.SellItemID, event.SellItemID)
	})
}
