package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"estate-service/internal/models"
	"estate-service/internal/repository"
)

// OwnerService handles owner CRUD.
type OwnerService struct {
	owners   *repository.OwnerRepository
	activity *ActivityRecorder
	logger   *logrus.Logger
}

// NewOwnerService creates a new owner service.
func NewOwnerService(owners *repository.OwnerRepository, activity *ActivityRecorder, logger *logrus.Logger) *OwnerService {
	return &OwnerService{owners: owners, activity: activity, logger: logger}
}

// Create inserts a new owner.
func (s *OwnerService) Create(ctx context.Context, req *models.CreateOwnerRequest) (*models.Owner, error) {
	owner := &models.Owner{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	}
	if err := s.owners.Create(ctx, owner); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "owner", owner.ID, "created", map[string]interface{}{"full_name": owner.FullName})
	return owner, nil
}

// Update saves changed owner fields.
func (s *OwnerService) Update(ctx context.Context, id uuid.UUID, req *models.CreateOwnerRequest) (*models.Owner, error) {
	owner, err := s.owners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner.FullName = req.FullName
	owner.Phone = req.Phone
	owner.Email = req.Email
	owner.Address = req.Address
	owner.Properties = nil

	if err := s.owners.Update(ctx, owner); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "owner", owner.ID, "updated", map[string]interface{}{"full_name": owner.FullName})
	return s.owners.GetByID(ctx, id)
}

// GetByID retrieves one owner with owned properties.
func (s *OwnerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	return s.owners.GetByID(ctx, id)
}

// List retrieves all owners.
func (s *OwnerService) List(ctx context.Context) ([]models.Owner, error) {
	return s.owners.List(ctx)
}
