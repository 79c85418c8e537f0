package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estate-service/internal/models"
)

// PropertyRepository handles property and property-linkage database operations.
type PropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Create inserts a new property.
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) error {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// GetByID retrieves one property with its owners, brokers and agreements
// eagerly joined. Ownership rows are ordered by creation time so the first
// row is the primary owner.
func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Owners", func(db *gorm.DB) *gorm.DB { return db.Order("property_owners.created_at ASC") }).
		Preload("Owners.Owner").
		Preload("Brokers.Broker").
		Preload("Agreements", func(db *gorm.DB) *gorm.DB { return db.Order("rent_agreements.created_at DESC") }).
		Preload("Agreements.Tenant").
		First(&property, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// List retrieves all properties with shallow owner/broker joins for display.
func (r *PropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Preload("Owners.Owner").
		Preload("Brokers.Broker").
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// ListRecent retrieves the most recently created properties.
func (r *PropertyRepository) ListRecent(ctx context.Context, limit int) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent properties: %w", err)
	}
	return properties, nil
}

// Update saves changed property fields.
func (r *PropertyRepository) Update(ctx context.Context, property *models.Property) error {
	if err := r.db.WithContext(ctx).Save(property).Error; err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

// GetStatus returns just the property's current status.
func (r *PropertyRepository) GetStatus(ctx context.Context, id uuid.UUID) (string, error) {
	var statuses []string
	err := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Pluck("status", &statuses).Error
	if err != nil {
		return "", fmt.Errorf("failed to get property status: %w", err)
	}
	if len(statuses) == 0 {
		return "", ErrNotFound
	}
	return statuses[0], nil
}

// SetStatus updates only the property's status column.
func (r *PropertyRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to set property status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of properties.
func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Property{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

// ============================================================================
// Ownership linkage
// ============================================================================

// DeleteOwnerLinks removes every ownership row for the property.
func (r *PropertyRepository) DeleteOwnerLinks(ctx context.Context, propertyID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Delete(&models.PropertyOwner{}).Error; err != nil {
		return fmt.Errorf("failed to delete ownership rows: %w", err)
	}
	return nil
}

// InsertOwnerLink adds one ownership row at the given percentage.
func (r *PropertyRepository) InsertOwnerLink(ctx context.Context, propertyID, ownerID uuid.UUID, percentage float64) error {
	link := models.PropertyOwner{
		PropertyID:          propertyID,
		OwnerID:             ownerID,
		OwnershipPercentage: percentage,
	}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return fmt.Errorf("failed to create ownership row: %w", err)
	}
	return nil
}

// GetOwnerLinks returns the property's ownership rows in creation order.
func (r *PropertyRepository) GetOwnerLinks(ctx context.Context, propertyID uuid.UUID) ([]models.PropertyOwner, error) {
	var links []models.PropertyOwner
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ownership rows: %w", err)
	}
	return links, nil
}

// HasOwnerLink reports whether an ownership row already links the pair.
func (r *PropertyRepository) HasOwnerLink(ctx context.Context, propertyID, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PropertyOwner{}).
		Where("property_id = ? AND owner_id = ?", propertyID, ownerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check ownership row: %w", err)
	}
	return count > 0, nil
}

// DeleteOwnerLink removes the ownership row for one property/owner pair.
func (r *PropertyRepository) DeleteOwnerLink(ctx context.Context, propertyID, ownerID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND owner_id = ?", propertyID, ownerID).
		Delete(&models.PropertyOwner{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete ownership row: %w", err)
	}
	return nil
}

// ============================================================================
// Broker linkage
// ============================================================================

// DeleteBrokerLinks removes every broker-assignment row for the property.
func (r *PropertyRepository) DeleteBrokerLinks(ctx context.Context, propertyID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Delete(&models.PropertyBroker{}).Error; err != nil {
		return fmt.Errorf("failed to delete broker rows: %w", err)
	}
	return nil
}

// InsertBrokerLink adds one broker-assignment row.
func (r *PropertyRepository) InsertBrokerLink(ctx context.Context, propertyID, brokerID uuid.UUID) error {
	link := models.PropertyBroker{
		PropertyID: propertyID,
		BrokerID:   brokerID,
	}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return fmt.Errorf("failed to create broker row: %w", err)
	}
	return nil
}

// GetBrokerLinks returns the property's broker-assignment rows.
func (r *PropertyRepository) GetBrokerLinks(ctx context.Context, propertyID uuid.UUID) ([]models.PropertyBroker, error) {
	var links []models.PropertyBroker
	err := r.db.WithContext(ctx).
		Preload("Broker").
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get broker rows: %w", err)
	}
	return links, nil
}
