package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPartyRepository implements PartyRepository using GORM
type GormPartyRepository struct {
	db *gorm.DB
}

// NewGormPartyRepository creates a new GormPartyRepository
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

// Create creates a new party
func (r *GormPartyRepository) Create(ctx context.Context, party *ledger.Party) error {
	model := models.PartyModelFromDomain(party)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a party by ID
func (r *GormPartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Party, error) {
	var model models.PartyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists parties with filtering
func (r *GormPartyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Party, int64, error) {
	var partyModels []models.PartyModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PartyModel{})
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("name ASC").Find(&partyModels).Error; err != nil {
		return nil, 0, err
	}

	parties := make([]ledger.Party, len(partyModels))
	for i := range partyModels {
		parties[i] = *partyModels[i].ToDomain()
	}
	return parties, total, nil
}

// Save updates an existing party
func (r *GormPartyRepository) Save(ctx context.Context, party *ledger.Party) error {
	model := models.PartyModelFromDomain(party)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates a party with an optimistic version check.
// Returns a concurrency error when another transaction modified the row.
func (r *GormPartyRepository) SaveWithLock(ctx context.Context, party *ledger.Party) error {
	model := models.PartyModelFromDomain(party)
	result := r.db.WithContext(ctx).
		Model(&models.PartyModel{}).
		Where("id = ? AND version = ?", party.ID, party.Version-1).
		Updates(map[string]interface{}{
			"name":           model.Name,
			"contact_name":   model.ContactName,
			"phone":          model.Phone,
			"email":          model.Email,
			"address":        model.Address,
			"notes":          model.Notes,
			"credit_balance": model.CreditBalance,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count returns the number of parties
func (r *GormPartyRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.PartyModel{}).Count(&total).Error
	return total, err
}

var _ ledger.PartyRepository = (*GormPartyRepository)(nil)
