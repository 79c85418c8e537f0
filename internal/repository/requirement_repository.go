package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estate-service/internal/models"
)

// RequirementRepository handles customer requirement database operations.
type RequirementRepository struct {
	db *gorm.DB
}

// NewRequirementRepository creates a new requirement repository.
func NewRequirementRepository(db *gorm.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// Create inserts a new requirement.
func (r *RequirementRepository) Create(ctx context.Context, requirement *models.Requirement) error {
	if err := r.db.WithContext(ctx).Create(requirement).Error; err != nil {
		return fmt.Errorf("failed to create requirement: %w", err)
	}
	return nil
}

// GetByID retrieves one requirement.
func (r *RequirementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Requirement, error) {
	var requirement models.Requirement
	if err := r.db.WithContext(ctx).First(&requirement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get requirement: %w", err)
	}
	return &requirement, nil
}

// List retrieves all requirements newest-first.
func (r *RequirementRepository) List(ctx context.Context) ([]models.Requirement, error) {
	var requirements []models.Requirement
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requirements).Error; err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	return requirements, nil
}

// Update saves changed requirement fields.
func (r *RequirementRepository) Update(ctx context.Context, requirement *models.Requirement) error {
	if err := r.db.WithContext(ctx).Save(requirement).Error; err != nil {
		return fmt.Errorf("failed to update requirement: %w", err)
	}
	return nil
}

// CountOpen returns the number of requirements still being worked.
func (r *RequirementRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Requirement{}).
		Where("status = ?", models.RequirementOpen).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count requirements: %w", err)
	}
	return count, nil
}
