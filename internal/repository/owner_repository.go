package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estate-service/internal/models"
)

// OwnerRepository handles owner database operations.
type OwnerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository creates a new owner repository.
func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// Create inserts a new owner.
func (r *OwnerRepository) Create(ctx context.Context, owner *models.Owner) error {
	if err := r.db.WithContext(ctx).Create(owner).Error; err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}
	return nil
}

// GetByID retrieves one owner with their owned properties joined. The
// embedded properties drive the agreement form's owner-to-property filtering.
func (r *OwnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	var owner models.Owner
	err := r.db.WithContext(ctx).
		Preload("Properties.Property").
		First(&owner, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	return &owner, nil
}

// List retrieves all owners ordered by name.
func (r *OwnerRepository) List(ctx context.Context) ([]models.Owner, error) {
	var owners []models.Owner
	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&owners).Error; err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return owners, nil
}

// Update saves changed owner fields.
func (r *OwnerRepository) Update(ctx context.Context, owner *models.Owner) error {
	if err := r.db.WithContext(ctx).Save(owner).Error; err != nil {
		return fmt.Errorf("failed to update owner: %w", err)
	}
	return nil
}

// Count returns the total number of owners.
func (r *OwnerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Owner{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}
	return count, nil
}
