package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create persists a transaction together with its items
func (r *GormTransactionRepository) Create(ctx context.Context, transaction *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a transaction with its items
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Preload("SellItems").
		Preload("BuyItems").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPartyID lists a party's transactions with items, newest first
func (r *GormTransactionRepository) FindByPartyID(ctx context.Context, partyID uuid.UUID) ([]ledger.Transaction, error) {
	var txModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Preload("SellItems").
		Preload("BuyItems").
		Where("party_id = ?", partyID).
		Order("date DESC, created_at DESC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]ledger.Transaction, len(txModels))
	for i := range txModels {
		transactions[i] = *txModels[i].ToDomain()
	}
	return transactions, nil
}

// FindSellItemByID finds a single sell item
func (r *GormTransactionRepository) FindSellItemByID(ctx context.Context, id uuid.UUID) (*ledger.SellItem, error) {
	var model models.SellItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// openSellItemRow carries a sell item plus its owning transaction's date
type openSellItemRow struct {
	models.SellItemModel
	TransactionDate time.Time
}

// FindOpenSellItemsByParty returns the party's sell items with an open
// balance in FIFO order: transaction date ascending, transaction id
// ascending as the stable tie-break.
func (r *GormTransactionRepository) FindOpenSellItemsByParty(ctx context.Context, partyID uuid.UUID) ([]ledger.SellItem, error) {
	var rows []openSellItemRow
	err := r.db.WithContext(ctx).
		Table("sell_items").
		Select("sell_items.*, transactions.date AS transaction_date").
		Joins("JOIN transactions ON transactions.id = sell_items.transaction_id").
		Where("transactions.party_id = ? AND transactions.kind = ? AND sell_items.balance_left > 0", partyID, ledger.TransactionKindSell).
		Order("transactions.date ASC, transactions.id ASC, sell_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]ledger.SellItem, len(rows))
	for i := range rows {
		item := rows[i].SellItemModel.ToDomain()
		item.TransactionDate = rows[i].TransactionDate
		items[i] = *item
	}
	return items, nil
}

// SaveSellItem updates a sell item's payment fields with an optimistic
// version check
func (r *GormTransactionRepository) SaveSellItem(ctx context.Context, item *ledger.SellItem) error {
	model := models.SellItemModelFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(&models.SellItemModel{}).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"payment_received": model.PaymentReceived,
			"balance_left":     model.BalanceLeft,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// LedgerTotals aggregates selling, received and outstanding totals
// across all sell items
func (r *GormTransactionRepository) LedgerTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	row := r.db.WithContext(ctx).
		Table("sell_items").
		Select("COALESCE(SUM(total_amount), 0), COALESCE(SUM(payment_received), 0), COALESCE(SUM(balance_left), 0)").
		Row()

	var totalSelling, totalReceived, balanceLeft decimal.Decimal
	if err := row.Scan(&totalSelling, &totalReceived, &balanceLeft); err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	return totalSelling, totalReceived, balanceLeft, nil
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
