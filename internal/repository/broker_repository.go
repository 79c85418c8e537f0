package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estate-service/internal/models"
)

// BrokerRepository handles broker database operations.
type BrokerRepository struct {
	db *gorm.DB
}

// NewBrokerRepository creates a new broker repository.
func NewBrokerRepository(db *gorm.DB) *BrokerRepository {
	return &BrokerRepository{db: db}
}

// Create inserts a new broker.
func (r *BrokerRepository) Create(ctx context.Context, broker *models.Broker) error {
	if err := r.db.WithContext(ctx).Create(broker).Error; err != nil {
		return fmt.Errorf("failed to create broker: %w", err)
	}
	return nil
}

// GetByID retrieves one broker.
func (r *BrokerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Broker, error) {
	var broker models.Broker
	if err := r.db.WithContext(ctx).First(&broker, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get broker: %w", err)
	}
	return &broker, nil
}

// List retrieves all brokers ordered by name.
func (r *BrokerRepository) List(ctx context.Context) ([]models.Broker, error) {
	var brokers []models.Broker
	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&brokers).Error; err != nil {
		return nil, fmt.Errorf("failed to list brokers: %w", err)
	}
	return brokers, nil
}

// Update saves changed broker fields.
func (r *BrokerRepository) Update(ctx context.Context, broker *models.Broker) error {
	if err := r.db.WithContext(ctx).Save(broker).Error; err != nil {
		return fmt.Errorf("failed to update broker: %w", err)
	}
	return nil
}
