package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estate-service/internal/models"
)

// PaymentRepository handles rent payment database operations.
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves one payment with its agreement chain joined.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("RentAgreement").
		Preload("RentAgreement.Property").
		Preload("RentAgreement.Tenant").
		First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// List retrieves all payments newest-first with the agreement chain joined
// so the ledger can show property and tenant without extra queries.
func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("RentAgreement").
		Preload("RentAgreement.Property").
		Preload("RentAgreement.Tenant").
		Order("payment_date DESC, created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// ListByAgreement retrieves the payments recorded against one agreement.
func (r *PaymentRepository) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("rent_agreement_id = ?", agreementID).
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list agreement payments: %w", err)
	}
	return payments, nil
}

// ListRecent retrieves the most recent payments for the dashboard feed.
func (r *PaymentRepository) ListRecent(ctx context.Context, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("RentAgreement").
		Preload("RentAgreement.Property").
		Preload("RentAgreement.Tenant").
		Order("payment_date DESC, created_at DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent payments: %w", err)
	}
	return payments, nil
}

// SumCompleted returns the total amount across completed payments.
func (r *PaymentRepository) SumCompleted(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}
