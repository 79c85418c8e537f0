package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estate-service/internal/models"
	"estate-service/internal/repository"
)

func newAgreementService(db *gorm.DB) (*AgreementService, *repository.PropertyRepository) {
	propertyRepo := repository.NewPropertyRepository(db)
	agreementRepo := repository.NewAgreementRepository(db)
	svc := NewAgreementService(agreementRepo, propertyRepo, newTestRecorder(db), nil, quietLogger())
	return svc, propertyRepo
}

func agreementRequest(property *models.Property, tenant *models.Tenant, owner *models.Owner) *models.CreateAgreementRequest {
	return &models.CreateAgreementRequest{
		PropertyID:  property.ID,
		TenantID:    tenant.ID,
		OwnerID:     owner.ID,
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
		MonthlyRent: 45000,
	}
}

func TestAgreementCreate_MarksPropertyRentedAndLinksOwner(t *testing.T) {
	db := newTestDB(t)
	svc, propertyRepo := newAgreementService(db)
	ctx := context.Background()

	property := seedProperty(t, db, "Wapda Town House", models.PropertyForRent)
	tenant := seedTenant(t, db, "Usman Tariq")
	owner := seedOwner(t, db, "Ahmed Khan")

	agreement, err := svc.Create(ctx, agreementRequest(property, tenant, owner))
	require.NoError(t, err)
	assert.Equal(t, models.AgreementActive, agreement.Status)
	require.NotNil(t, agreement.Tenant)
	assert.Equal(t, "Usman Tariq", agreement.Tenant.FullName)

	status, err := propertyRepo.GetStatus(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyRented, status)

	links, err := propertyRepo.GetOwnerLinks(ctx, property.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, owner.ID, links[0].OwnerID)
	assert.Equal(t, float64(100), links[0].OwnershipPercentage)
}

// Re-signing the same owner and property must not duplicate ownership rows.
func TestAgreementCreate_OwnershipLinkIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc, propertyRepo := newAgreementService(db)
	ctx := context.Background()

	property := seedProperty(t, db, "Wapda Town House", models.PropertyForRent)
	owner := seedOwner(t, db, "Ahmed Khan")
	firstTenant := seedTenant(t, db, "Usman Tariq")
	secondTenant := seedTenant(t, db, "Hina Raza")

	_, err := svc.Create(ctx, agreementRequest(property, firstTenant, owner))
	require.NoError(t, err)

	req := agreementRequest(property, secondTenant, owner)
	req.StartDate = "2027-01-01"
	req.EndDate = "2027-12-31"
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)

	links, err := propertyRepo.GetOwnerLinks(ctx, property.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestAgreementCreate_RejectsBadDates(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAgreementService(db)
	ctx := context.Background()

	property := seedProperty(t, db, "Faisal Town Flat", models.PropertyForRent)
	tenant := seedTenant(t, db, "Usman Tariq")
	owner := seedOwner(t, db, "Ahmed Khan")

	req := agreementRequest(property, tenant, owner)
	req.EndDate = "2025-01-01"
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	req = agreementRequest(property, tenant, owner)
	req.StartDate = "01/01/2026"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	var count int64
	require.NoError(t, db.Model(&models.RentAgreement{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAgreementCreate_UnknownPropertyWritesNothing(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAgreementService(db)
	ctx := context.Background()

	tenant := seedTenant(t, db, "Usman Tariq")
	owner := seedOwner(t, db, "Ahmed Khan")
	ghost := &models.Property{}
	ghost.ID = owner.ID // any UUID with no property row behind it

	_, err := svc.Create(ctx, agreementRequest(ghost, tenant, owner))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.RentAgreement{}).Count(&count).Error)
	assert.Zero(t, count)
}

// A failure after the agreement insert must unwind it and leave the property
// status untouched.
func TestAgreementCreate_CompensatesOnLinkFailure(t *testing.T) {
	db := newTestDB(t)
	svc, propertyRepo := newAgreementService(db)
	ctx := context.Background()

	property := seedProperty(t, db, "Bahria Town Villa", models.PropertyForRent)
	tenant := seedTenant(t, db, "Usman Tariq")
	owner := seedOwner(t, db, "Ahmed Khan")

	// Breaking the ownership table makes the second saga step fail.
	require.NoError(t, db.Migrator().DropTable(&models.PropertyOwner{}))

	_, err := svc.Create(ctx, agreementRequest(property, tenant, owner))
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.RentAgreement{}).Count(&count).Error)
	assert.Zero(t, count)

	status, err := propertyRepo.GetStatus(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyForRent, status)
}

func TestAgreementUpdate_DoesNotTouchPropertyStatus(t *testing.T) {
	db := newTestDB(t)
	svc, propertyRepo := newAgreementService(db)
	ctx := context.Background()

	property := seedProperty(t, db, "Wapda Town House", models.PropertyForRent)
	tenant := seedTenant(t, db, "Usman Tariq")
	owner := seedOwner(t, db, "Ahmed Khan")

	agreement, err := svc.Create(ctx, agreementRequest(property, tenant, owner))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, agreement.ID, &models.UpdateAgreementRequest{
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
		MonthlyRent: 50000,
		Status:      models.AgreementTerminated,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AgreementTerminated, updated.Status)
	assert.Equal(t, float64(50000), updated.MonthlyRent)

	status, err := propertyRepo.GetStatus(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyRented, status)
}

func TestExpireOverdue_OnlyFlipsPastActiveAgreements(t *testing.T) {
	db := newTestDB(t)
	svc, propertyRepo := newAgreementService(db)
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	property := seedProperty(t, db, "Wapda Town House", models.PropertyRented)
	tenant := seedTenant(t, db, "Usman Tariq")
	owner := seedOwner(t, db, "Ahmed Khan")

	overdue := &models.RentAgreement{
		PropertyID: property.ID, TenantID: tenant.ID, OwnerID: owner.ID,
		StartDate: now.AddDate(-1, 0, 0), EndDate: now.AddDate(0, -1, 0),
		MonthlyRent: 45000, Status: models.AgreementActive,
	}
	current := &models.RentAgreement{
		PropertyID: property.ID, TenantID: tenant.ID, OwnerID: owner.ID,
		StartDate: now.AddDate(0, -6, 0), EndDate: now.AddDate(0, 6, 0),
		MonthlyRent: 45000, Status: models.AgreementActive,
	}
	terminated := &models.RentAgreement{
		PropertyID: property.ID, TenantID: tenant.ID, OwnerID: owner.ID,
		StartDate: now.AddDate(-2, 0, 0), EndDate: now.AddDate(-1, 0, 0),
		MonthlyRent: 45000, Status: models.AgreementTerminated,
	}
	require.NoError(t, db.Create(overdue).Error)
	require.NoError(t, db.Create(current).Error)
	require.NoError(t, db.Create(terminated).Error)

	expired, err := svc.ExpireOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	// Fresh destination per lookup: a populated primary key would leak into
	// the next query's conditions.
	var reloadedOverdue models.RentAgreement
	require.NoError(t, db.First(&reloadedOverdue, "id = ?", overdue.ID).Error)
	assert.Equal(t, models.AgreementExpired, reloadedOverdue.Status)

	var reloadedCurrent models.RentAgreement
	require.NoError(t, db.First(&reloadedCurrent, "id = ?", current.ID).Error)
	assert.Equal(t, models.AgreementActive, reloadedCurrent.Status)

	var reloadedTerminated models.RentAgreement
	require.NoError(t, db.First(&reloadedTerminated, "id = ?", terminated.ID).Error)
	assert.Equal(t, models.AgreementTerminated, reloadedTerminated.Status)

	// Expiry never re-lists the property.
	status, err := propertyRepo.GetStatus(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyRented, status)
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	agreement := &models.RentAgreement{EndDate: now.AddDate(0, 0, 10)}
	assert.Equal(t, 10, agreement.DaysRemaining(now))

	agreement.EndDate = now.AddDate(0, 0, -3)
	assert.Equal(t, -3, agreement.DaysRemaining(now))
}
