package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estate-service/internal/models"
)

// AgreementRepository handles rent agreement database operations.
type AgreementRepository struct {
	db *gorm.DB
}

// NewAgreementRepository creates a new agreement repository.
func NewAgreementRepository(db *gorm.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

// Create inserts a new rent agreement.
func (r *AgreementRepository) Create(ctx context.Context, agreement *models.RentAgreement) error {
	if err := r.db.WithContext(ctx).Create(agreement).Error; err != nil {
		return fmt.Errorf("failed to create agreement: %w", err)
	}
	return nil
}

// GetByID retrieves one agreement with its property, tenant and owner joined.
func (r *AgreementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RentAgreement, error) {
	var agreement models.RentAgreement
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Tenant").
		Preload("Owner").
		First(&agreement, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}
	return &agreement, nil
}

// List retrieves all agreements newest-first with relations joined.
func (r *AgreementRepository) List(ctx context.Context) ([]models.RentAgreement, error) {
	var agreements []models.RentAgreement
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Tenant").
		Preload("Owner").
		Order("created_at DESC").
		Find(&agreements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}
	return agreements, nil
}

// Update saves changed agreement fields.
func (r *AgreementRepository) Update(ctx context.Context, agreement *models.RentAgreement) error {
	if err := r.db.WithContext(ctx).Save(agreement).Error; err != nil {
		return fmt.Errorf("failed to update agreement: %w", err)
	}
	return nil
}

// Delete removes an agreement row. Used by the creation saga's compensation
// path when a later step fails.
func (r *AgreementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.RentAgreement{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete agreement: %w", err)
	}
	return nil
}

// CountByStatus returns the number of agreements in the given status.
func (r *AgreementRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RentAgreement{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count agreements: %w", err)
	}
	return count, nil
}

// ExpireOverdue transitions every active agreement whose end date has passed
// to expired. Returns the number of rows updated.
func (r *AgreementRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.RentAgreement{}).
		Where("status = ? AND end_date < ?", models.AgreementActive, now).
		Update("status", models.AgreementExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire agreements: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ExpiringWithin returns active agreements ending within the given number of
// days, soonest first.
func (r *AgreementRepository) ExpiringWithin(ctx context.Context, days int, limit int) ([]models.RentAgreement, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, days)
	var agreements []models.RentAgreement
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Tenant").
		Where("status = ? AND end_date >= ? AND end_date <= ?", models.AgreementActive, now, cutoff).
		Order("end_date ASC").
		Limit(limit).
		Find(&agreements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring agreements: %w", err)
	}
	return agreements, nil
}
