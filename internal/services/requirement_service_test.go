package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-service/internal/models"
	"estate-service/internal/repository"
)

func TestRequirementCreate_DefaultsStatusOpen(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequirementService(repository.NewRequirementRepository(db), newTestRecorder(db), quietLogger())

	followUp := "2026-09-15"
	requirement, err := svc.Create(context.Background(), &models.CreateRequirementRequest{
		CustomerName:    "Hina Raza",
		CustomerPhone:   "0303-4445556",
		RequirementType: "rent",
		PropertyType:    "residential",
		InquiryDate:     "2026-08-20",
		FollowUpDate:    &followUp,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequirementOpen, requirement.Status)
	require.NotNil(t, requirement.FollowUpDate)
	assert.Equal(t, "2026-09-15", requirement.FollowUpDate.Format(models.DateOnly))
}

func TestRequirementCreate_RejectsBadInquiryDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequirementService(repository.NewRequirementRepository(db), newTestRecorder(db), quietLogger())

	_, err := svc.Create(context.Background(), &models.CreateRequirementRequest{
		CustomerName:    "Hina Raza",
		CustomerPhone:   "0303-4445556",
		RequirementType: "rent",
		PropertyType:    "residential",
		InquiryDate:     "20-08-2026",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestRequirementUpdate_ChangesStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequirementService(repository.NewRequirementRepository(db), newTestRecorder(db), quietLogger())
	ctx := context.Background()

	requirement, err := svc.Create(ctx, &models.CreateRequirementRequest{
		CustomerName:    "Hina Raza",
		CustomerPhone:   "0303-4445556",
		RequirementType: "rent",
		PropertyType:    "residential",
		InquiryDate:     "2026-08-20",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, requirement.ID, &models.UpdateRequirementRequest{
		CustomerName:    "Hina Raza",
		CustomerPhone:   "0303-4445556",
		RequirementType: "rent",
		PropertyType:    "residential",
		InquiryDate:     "2026-08-20",
		Status:          models.RequirementClosed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequirementClosed, updated.Status)
}
