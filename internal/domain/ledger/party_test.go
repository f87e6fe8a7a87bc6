package ledger

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParty(t *testing.T) {
	t.Run("creates party with valid name", func(t *testing.T) {
		party, err := NewParty("Acme Traders")
		require.NoError(t, err)
		require.NotNil(t, party)

		assert.Equal(t, "Acme Traders", party.Name)
		assert.True(t, party.CreditBalance.IsZero())
		assert.NotEmpty(t, party.ID)
		assert.Equal(t, 1, party.Version)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		party, err := NewParty("  Acme Traders  ")
		require.NoError(t, err)
		assert.Equal(t, "Acme Traders", party.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewParty("   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewParty(strings.Repeat("a", 201))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})
}

func TestPartyCredit(t *testing.T) {
	newParty := func(t *testing.T) *Party {
		party, err := NewParty("Acme Traders")
		require.NoError(t, err)
		return party
	}

	t.Run("add credit accumulates", func(t *testing.T) {
		party := newParty(t)

		require.NoError(t, party.AddCredit(decimal.NewFromInt(30)))
		require.NoError(t, party.AddCredit(decimal.NewFromInt(20)))

		assert.True(t, party.CreditBalance.Equal(decimal.NewFromInt(50)))
	})

	t.Run("add credit bumps version", func(t *testing.T) {
		party := newParty(t)
		before := party.Version

		require.NoError(t, party.AddCredit(decimal.NewFromInt(10)))

		assert.Equal(t, before+1, party.Version)
	})

	t.Run("deduct credit reverses a prior add exactly", func(t *testing.T) {
		party := newParty(t)
		require.NoError(t, party.AddCredit(decimal.RequireFromString("12.3456")))

		require.NoError(t, party.DeductCredit(decimal.RequireFromString("12.3456")))

		assert.True(t, party.CreditBalance.IsZero())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		party := newParty(t)

		require.Error(t, party.AddCredit(decimal.Zero))
		require.Error(t, party.AddCredit(decimal.NewFromInt(-5)))
		require.Error(t, party.DeductCredit(decimal.Zero))
	})
}
