package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"estate-service/internal/models"
	"estate-service/internal/repository"
)

// TenantService handles renter CRUD.
type TenantService struct {
	tenants  *repository.TenantRepository
	activity *ActivityRecorder
	logger   *logrus.Logger
}

// NewTenantService creates a new tenant service.
func NewTenantService(tenants *repository.TenantRepository, activity *ActivityRecorder, logger *logrus.Logger) *TenantService {
	return &TenantService{tenants: tenants, activity: activity, logger: logger}
}

// Create inserts a new tenant.
func (s *TenantService) Create(ctx context.Context, req *models.CreateTenantRequest) (*models.Tenant, error) {
	tenant := &models.Tenant{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "tenant", tenant.ID, "created", map[string]interface{}{"full_name": tenant.FullName})
	return tenant, nil
}

// Update saves changed tenant fields.
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req *models.CreateTenantRequest) (*models.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tenant.FullName = req.FullName
	tenant.Phone = req.Phone
	tenant.Email = req.Email
	tenant.Address = req.Address
	tenant.Agreements = nil

	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "tenant", tenant.ID, "updated", map[string]interface{}{"full_name": tenant.FullName})
	return s.tenants.GetByID(ctx, id)
}

// GetByID retrieves one tenant with their agreements.
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.tenants.GetByID(ctx, id)
}

// List retrieves all tenants.
func (s *TenantService) List(ctx context.Context) ([]models.Tenant, error) {
	return s.tenants.List(ctx)
}
