package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPartyPaymentRepository implements PartyPaymentRepository using GORM
type GormPartyPaymentRepository struct {
	db *gorm.DB
}

// NewGormPartyPaymentRepository creates a new GormPartyPaymentRepository
func NewGormPartyPaymentRepository(db *gorm.DB) *GormPartyPaymentRepository {
	return &GormPartyPaymentRepository{db: db}
}

// Create persists a party payment together with its allocations via
// GORM's association handling
func (r *GormPartyPaymentRepository) Create(ctx context.Context, p *payment.PartyPayment) error {
	model := models.PartyPaymentModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a party payment with its allocations
func (r *GormPartyPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.PartyPayment, error) {
	var model models.PartyPaymentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPartyID lists a party's non-reversed payments, most recent
// payment date first
func (r *GormPartyPaymentRepository) FindByPartyID(ctx context.Context, partyID uuid.UUID) ([]payment.PartyPayment, error) {
	var paymentModels []models.PartyPaymentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("party_id = ? AND status = ?", partyID, payment.StatusActive).
		Order("payment_date DESC, created_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]payment.PartyPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

// Save updates a party payment's reversal state. Allocation rows are
// immutable and deliberately not written back here.
func (r *GormPartyPaymentRepository) Save(ctx context.Context, p *payment.PartyPayment) error {
	model := models.PartyPaymentModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&models.PartyPaymentModel{}).
		Where("id = ? AND version = ?", p.ID, p.Version-1).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"reversed_at":    model.ReversedAt,
			"reversed_by":    model.ReversedBy,
			"reverse_reason": model.ReverseReason,
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

// CountActive counts non-reversed party payments
func (r *GormPartyPaymentRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.PartyPaymentModel{}).
		Where("status = ?", payment.StatusActive).
		Count(&total).Error
	return total, err
}

// LastPaymentDate returns the most recent non-reversed payment date for
// a party, or nil when the party has none
func (r *GormPartyPaymentRepository) LastPaymentDate(ctx context.Context, partyID uuid.UUID) (*time.Time, error) {
	var model models.PartyPaymentModel
	err := r.db.WithContext(ctx).
		Where("party_id = ? AND status = ?", partyID, payment.StatusActive).
		Order("payment_date DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &model.PaymentDate, nil
}

var _ payment.PartyPaymentRepository = (*GormPartyPaymentRepository)(nil)
