package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estate-service/internal/models"
	"estate-service/internal/repository"
)

func newPaymentService(db *gorm.DB) *PaymentService {
	return NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewAgreementRepository(db),
		newTestRecorder(db),
		nil,
		quietLogger(),
	)
}

func seedAgreement(t *testing.T, db *gorm.DB) *models.RentAgreement {
	t.Helper()
	property := seedProperty(t, db, "Wapda Town House", models.PropertyRented)
	tenant := seedTenant(t, db, "Usman Tariq")
	owner := seedOwner(t, db, "Ahmed Khan")

	agreement := &models.RentAgreement{
		PropertyID:  property.ID,
		TenantID:    tenant.ID,
		OwnerID:     owner.ID,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 45000,
		Status:      models.AgreementActive,
	}
	require.NoError(t, db.Create(agreement).Error)
	return agreement
}

func TestPaymentCreate_AppliesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db)
	agreement := seedAgreement(t, db)

	payment, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		RentAgreementID: agreement.ID,
		Amount:          45000,
		PaymentDate:     "2026-02-01",
		PaymentMethod:   "bank_transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, "rent", payment.PaymentType)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	require.NotNil(t, payment.RentAgreement)
	assert.Equal(t, agreement.ID, payment.RentAgreement.ID)
}

func TestPaymentCreate_UnknownAgreementWritesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db)

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		RentAgreementID: uuid.New(),
		Amount:          45000,
		PaymentDate:     "2026-02-01",
		PaymentMethod:   "cash",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPaymentCreate_RejectsBadDate(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db)
	agreement := seedAgreement(t, db)

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		RentAgreementID: agreement.ID,
		Amount:          45000,
		PaymentDate:     "02/01/2026",
		PaymentMethod:   "cash",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestPaymentListByAgreement(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	first := seedAgreement(t, db)
	second := seedAgreement(t, db)

	for _, agreementID := range []uuid.UUID{first.ID, first.ID, second.ID} {
		_, err := svc.Create(ctx, &models.CreatePaymentRequest{
			RentAgreementID: agreementID,
			Amount:          45000,
			PaymentDate:     "2026-03-01",
			PaymentMethod:   "cash",
		})
		require.NoError(t, err)
	}

	payments, err := svc.ListByAgreement(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}
