package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appledger "github.com/ledgerbook/backend/internal/application/ledger"
	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
)

type ledgerFixture struct {
	partyRepo        *persistence.GormPartyRepository
	transactionRepo  *persistence.GormTransactionRepository
	partyPaymentRepo *persistence.GormPartyPaymentRepository
	partyService     *appledger.PartyService
	statsService     *appledger.StatsService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PartyModel{},
		&models.TransactionModel{},
		&models.SellItemModel{},
		&models.BuyItemModel{},
		&models.PaymentModel{},
		&models.PartyPaymentModel{},
		&models.AllocationModel{},
	)
	require.NoError(t, err)

	partyRepo := persistence.NewGormPartyRepository(db)
	transactionRepo := persistence.NewGormTransactionRepository(db)
	partyPaymentRepo := persistence.NewGormPartyPaymentRepository(db)

	return &ledgerFixture{
		partyRepo:        partyRepo,
		transactionRepo:  transactionRepo,
		partyPaymentRepo: partyPaymentRepo,
		partyService:     appledger.NewPartyService(partyRepo, transactionRepo, partyPaymentRepo),
		statsService:     appledger.NewStatsService(transactionRepo, partyPaymentRepo),
	}
}

func date(day int) time.Time {
	return time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC)
}

func TestCreateParty(t *testing.T) {
	f := newLedgerFixture(t)

	t.Run("creates and reads back a party", func(t *testing.T) {
		created, err := f.partyService.CreateParty(
			context.Background(), "Acme Traders", "Jo Vance", "555-0101", "jo@acme.example", "12 Mill Rd", "wholesale")
		require.NoError(t, err)

		got, err := f.partyService.GetParty(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Traders", got.Name)
		assert.Equal(t, "Jo Vance", got.ContactName)
		assert.Equal(t, "555-0101", got.Phone)
		assert.True(t, got.CreditBalance.IsZero())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := f.partyService.CreateParty(context.Background(), "  ", "", "", "", "", "")
		require.Error(t, err)
	})

	t.Run("unknown party is not found", func(t *testing.T) {
		_, err := f.partyService.GetParty(context.Background(), uuid.New())
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestListParties(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Acme Traders", "Basin Supply", "Crescent Farm"} {
		_, err := f.partyService.CreateParty(ctx, name, "", "", "", "", "")
		require.NoError(t, err)
	}

	t.Run("lists all with defaults", func(t *testing.T) {
		parties, total, err := f.partyService.ListParties(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, parties, 3)
		assert.Equal(t, "Acme Traders", parties[0].Name)
	})

	t.Run("paginates", func(t *testing.T) {
		parties, total, err := f.partyService.ListParties(ctx, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, parties, 1)
	})

	t.Run("searches by name", func(t *testing.T) {
		parties, total, err := f.partyService.ListParties(ctx, shared.Filter{Search: "Basin"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, parties, 1)
		assert.Equal(t, "Basin Supply", parties[0].Name)
	})
}

func TestGetPartyDetail(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	created, err := f.partyService.CreateParty(ctx, "Acme Traders", "", "", "", "", "")
	require.NoError(t, err)
	partyID := created.ID

	sell, err := ledger.NewTransaction(ledger.TransactionKindSell, partyID, date(1))
	require.NoError(t, err)
	item, err := sell.AddSellItem("wool", decimal.NewFromInt(10), decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, item.ApplyAllocation(decimal.NewFromInt(200)))
	require.NoError(t, f.transactionRepo.Create(ctx, sell))

	buy, err := ledger.NewTransaction(ledger.TransactionKindBuy, partyID, date(3))
	require.NoError(t, err)
	_, err = buy.AddBuyItem("feed", decimal.NewFromInt(20), decimal.NewFromInt(150))
	require.NoError(t, err)
	require.NoError(t, f.transactionRepo.Create(ctx, buy))

	pp, err := payment.NewPartyPayment(partyID, decimal.NewFromInt(200), date(5), payment.MethodBank, "", uuid.New())
	require.NoError(t, err)
	_, err = pp.AddAllocation(item.ID, decimal.NewFromInt(200))
	require.NoError(t, err)
	require.NoError(t, f.partyPaymentRepo.Create(ctx, pp))

	detail, err := f.partyService.GetPartyDetail(ctx, partyID)
	require.NoError(t, err)

	assert.Equal(t, partyID, detail.Party.ID)
	assert.Len(t, detail.Transactions, 2)
	require.Len(t, detail.PartyPayments, 1)
	assert.True(t, detail.PartyPayments[0].Amount.Equal(decimal.NewFromInt(200)))

	assert.Equal(t, 2, detail.Summary.TransactionCount)
	assert.True(t, detail.Summary.SellingTotal.Equal(decimal.NewFromInt(500)))
	assert.True(t, detail.Summary.BuyingTotal.Equal(decimal.NewFromInt(150)))
	assert.True(t, detail.Summary.TotalReceived.Equal(decimal.NewFromInt(200)))
	assert.True(t, detail.Summary.BalanceOwed.Equal(decimal.NewFromInt(300)))
	require.NotNil(t, detail.Summary.LastPayment)
	assert.True(t, detail.Summary.LastPayment.Equal(date(5)))
}

func TestGetLedgerStats(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	t.Run("zero totals on empty ledger", func(t *testing.T) {
		stats, err := f.statsService.GetLedgerStats(ctx)
		require.NoError(t, err)
		assert.True(t, stats.TotalSelling.IsZero())
		assert.True(t, stats.TotalReceived.IsZero())
		assert.True(t, stats.BalanceLeft.IsZero())
		assert.EqualValues(t, 0, stats.PartyPaymentsCount)
	})

	t.Run("aggregates across parties", func(t *testing.T) {
		partyA, err := f.partyService.CreateParty(ctx, "Acme Traders", "", "", "", "", "")
		require.NoError(t, err)
		partyB, err := f.partyService.CreateParty(ctx, "Basin Supply", "", "", "", "", "")
		require.NoError(t, err)

		sellA, err := ledger.NewTransaction(ledger.TransactionKindSell, partyA.ID, date(1))
		require.NoError(t, err)
		itemA, err := sellA.AddSellItem("wool", decimal.NewFromInt(1), decimal.NewFromInt(300))
		require.NoError(t, err)
		require.NoError(t, itemA.ApplyAllocation(decimal.NewFromInt(100)))
		require.NoError(t, f.transactionRepo.Create(ctx, sellA))

		sellB, err := ledger.NewTransaction(ledger.TransactionKindSell, partyB.ID, date(2))
		require.NoError(t, err)
		_, err = sellB.AddSellItem("hides", decimal.NewFromInt(1), decimal.NewFromInt(200))
		require.NoError(t, err)
		require.NoError(t, f.transactionRepo.Create(ctx, sellB))

		pp, err := payment.NewPartyPayment(partyA.ID, decimal.NewFromInt(100), date(3), payment.MethodCash, "", uuid.New())
		require.NoError(t, err)
		require.NoError(t, f.partyPaymentRepo.Create(ctx, pp))

		reversed, err := payment.NewPartyPayment(partyB.ID, decimal.NewFromInt(50), date(4), payment.MethodCash, "", uuid.New())
		require.NoError(t, err)
		require.NoError(t, reversed.MarkReversed(uuid.New(), "entry error"))
		require.NoError(t, f.partyPaymentRepo.Create(ctx, reversed))

		stats, err := f.statsService.GetLedgerStats(ctx)
		require.NoError(t, err)

		assert.True(t, stats.TotalSelling.Equal(decimal.NewFromInt(500)))
		assert.True(t, stats.TotalReceived.Equal(decimal.NewFromInt(100)))
		assert.True(t, stats.BalanceLeft.Equal(decimal.NewFromInt(400)))
		// Reversed payments are excluded from the active count.
		assert.EqualValues(t, 1, stats.PartyPaymentsCount)
	})
}
