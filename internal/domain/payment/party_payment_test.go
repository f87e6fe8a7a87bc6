package payment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook/backend/internal/domain/shared"
)

func TestNewPartyPayment(t *testing.T) {
	partyID := uuid.New()
	actorID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("creates active payment", func(t *testing.T) {
		pp, err := NewPartyPayment(partyID, decimal.NewFromInt(120), date, MethodBank, "march settlement", actorID)
		require.NoError(t, err)

		assert.Equal(t, StatusActive, pp.Status)
		assert.False(t, pp.IsReversed())
		assert.True(t, pp.CreditAdded.IsZero())
		assert.Nil(t, pp.ReversedAt)
		assert.Empty(t, pp.Allocations)
	})

	t.Run("defaults method to cash", func(t *testing.T) {
		pp, err := NewPartyPayment(partyID, decimal.NewFromInt(120), date, "", "", actorID)
		require.NoError(t, err)
		assert.Equal(t, MethodCash, pp.Method)
	})

	t.Run("fails without party", func(t *testing.T) {
		_, err := NewPartyPayment(uuid.Nil, decimal.NewFromInt(120), date, MethodCash, "", actorID)
		require.Error(t, err)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		_, err := NewPartyPayment(partyID, decimal.Zero, date, MethodCash, "", actorID)
		require.Error(t, err)
		_, err = NewPartyPayment(partyID, decimal.NewFromInt(-1), date, MethodCash, "", actorID)
		require.Error(t, err)
	})

	t.Run("fails without date", func(t *testing.T) {
		_, err := NewPartyPayment(partyID, decimal.NewFromInt(120), time.Time{}, MethodCash, "", actorID)
		require.Error(t, err)
	})
}

func TestPartyPaymentAllocations(t *testing.T) {
	newPayment := func(t *testing.T, amount int64) *PartyPayment {
		pp, err := NewPartyPayment(uuid.New(), decimal.NewFromInt(amount), time.Now(), MethodCash, "", uuid.New())
		require.NoError(t, err)
		return pp
	}

	t.Run("records allocations and sums them", func(t *testing.T) {
		pp := newPayment(t, 120)
		itemA := uuid.New()
		itemB := uuid.New()

		allocA, err := pp.AddAllocation(itemA, decimal.NewFromInt(100))
		require.NoError(t, err)
		_, err = pp.AddAllocation(itemB, decimal.NewFromInt(20))
		require.NoError(t, err)

		assert.Equal(t, pp.ID, allocA.PartyPaymentID)
		assert.Equal(t, itemA, allocA.SellItemID)
		assert.Len(t, pp.Allocations, 2)
		assert.True(t, pp.AllocatedAmount().Equal(decimal.NewFromInt(120)))
		assert.True(t, pp.CreditPortion().IsZero())
	})

	t.Run("credit portion is the unallocated residue", func(t *testing.T) {
		pp := newPayment(t, 200)
		_, err := pp.AddAllocation(uuid.New(), decimal.NewFromInt(150))
		require.NoError(t, err)

		assert.True(t, pp.CreditPortion().Equal(decimal.NewFromInt(50)))

		pp.BankCredit(pp.CreditPortion())
		assert.True(t, pp.CreditAdded.Equal(decimal.NewFromInt(50)))
	})

	t.Run("rejects non-positive allocation", func(t *testing.T) {
		pp := newPayment(t, 100)
		_, err := pp.AddAllocation(uuid.New(), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects allocation on reversed payment", func(t *testing.T) {
		pp := newPayment(t, 100)
		require.NoError(t, pp.MarkReversed(uuid.New(), "entry error"))

		_, err := pp.AddAllocation(uuid.New(), decimal.NewFromInt(10))
		require.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestPartyPaymentMarkReversed(t *testing.T) {
	t.Run("records reversal metadata", func(t *testing.T) {
		pp, err := NewPartyPayment(uuid.New(), decimal.NewFromInt(100), time.Now(), MethodCash, "", uuid.New())
		require.NoError(t, err)
		admin := uuid.New()
		versionBefore := pp.Version

		require.NoError(t, pp.MarkReversed(admin, "duplicate entry"))

		assert.True(t, pp.IsReversed())
		assert.Equal(t, StatusReversed, pp.Status)
		require.NotNil(t, pp.ReversedAt)
		require.NotNil(t, pp.ReversedBy)
		assert.Equal(t, admin, *pp.ReversedBy)
		assert.Equal(t, "duplicate entry", pp.ReverseReason)
		assert.Equal(t, versionBefore+1, pp.Version)
	})

	t.Run("second reversal fails with already deleted", func(t *testing.T) {
		pp, err := NewPartyPayment(uuid.New(), decimal.NewFromInt(100), time.Now(), MethodCash, "", uuid.New())
		require.NoError(t, err)
		require.NoError(t, pp.MarkReversed(uuid.New(), "first"))
		firstReversedAt := *pp.ReversedAt

		err = pp.MarkReversed(uuid.New(), "second")
		require.ErrorIs(t, err, shared.ErrAlreadyDeleted)

		// The original reversal record is untouched.
		assert.Equal(t, firstReversedAt, *pp.ReversedAt)
		assert.Equal(t, "first", pp.ReverseReason)
	})
}
