package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"estate-service/internal/models"
	"estate-service/internal/repository"
)

// RequirementService handles customer inquiry CRUD.
type RequirementService struct {
	requirements *repository.RequirementRepository
	activity     *ActivityRecorder
	logger       *logrus.Logger
}

// NewRequirementService creates a new requirement service.
func NewRequirementService(requirements *repository.RequirementRepository, activity *ActivityRecorder, logger *logrus.Logger) *RequirementService {
	return &RequirementService{requirements: requirements, activity: activity, logger: logger}
}

// Create inserts a new requirement.
func (s *RequirementService) Create(ctx context.Context, req *models.CreateRequirementRequest) (*models.Requirement, error) {
	requirement, err := s.fromRequest(&models.Requirement{}, req)
	if err != nil {
		return nil, err
	}
	if err := s.requirements.Create(ctx, requirement); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "requirement", requirement.ID, "created", map[string]interface{}{
		"customer_name": requirement.CustomerName,
	})
	return requirement, nil
}

// Update saves changed requirement fields.
func (s *RequirementService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateRequirementRequest) (*models.Requirement, error) {
	existing, err := s.requirements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	requirement, err := s.fromRequest(existing, req)
	if err != nil {
		return nil, err
	}
	if err := s.requirements.Update(ctx, requirement); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "requirement", requirement.ID, "updated", map[string]interface{}{
		"status": requirement.Status,
	})
	return requirement, nil
}

// GetByID retrieves one requirement.
func (s *RequirementService) GetByID(ctx context.Context, id uuid.UUID) (*models.Requirement, error) {
	return s.requirements.GetByID(ctx, id)
}

// List retrieves all requirements.
func (s *RequirementService) List(ctx context.Context) ([]models.Requirement, error) {
	return s.requirements.List(ctx)
}

func (s *RequirementService) fromRequest(requirement *models.Requirement, req *models.CreateRequirementRequest) (*models.Requirement, error) {
	inquiryDate, err := models.ParseDate(req.InquiryDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	requirement.CustomerName = req.CustomerName
	requirement.CustomerPhone = req.CustomerPhone
	requirement.CustomerEmail = req.CustomerEmail
	requirement.Profession = req.Profession
	requirement.RequirementType = req.RequirementType
	requirement.PropertyType = req.PropertyType
	requirement.BudgetMin = req.BudgetMin
	requirement.BudgetMax = req.BudgetMax
	requirement.PreferredLocation = req.PreferredLocation
	requirement.AreaPreference = req.AreaPreference
	requirement.AdditionalNotes = req.AdditionalNotes
	requirement.InquiryDate = inquiryDate
	requirement.AssignedTo = req.AssignedTo

	if req.FollowUpDate != nil && *req.FollowUpDate != "" {
		followUp, err := models.ParseDate(*req.FollowUpDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		requirement.FollowUpDate = &followUp
	} else {
		requirement.FollowUpDate = nil
	}

	if req.Status != "" {
		requirement.Status = req.Status
	} else if requirement.Status == "" {
		requirement.Status = models.RequirementOpen
	}

	return requirement, nil
}
