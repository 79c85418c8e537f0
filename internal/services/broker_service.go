package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"estate-service/internal/models"
	"estate-service/internal/repository"
)

// BrokerService handles broker CRUD.
type BrokerService struct {
	brokers  *repository.BrokerRepository
	activity *ActivityRecorder
	logger   *logrus.Logger
}

// NewBrokerService creates a new broker service.
func NewBrokerService(brokers *repository.BrokerRepository, activity *ActivityRecorder, logger *logrus.Logger) *BrokerService {
	return &BrokerService{brokers: brokers, activity: activity, logger: logger}
}

// Create inserts a new broker.
func (s *BrokerService) Create(ctx context.Context, req *models.CreateBrokerRequest) (*models.Broker, error) {
	broker := &models.Broker{
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		AgencyName:    req.AgencyName,
		AgencyAddress: req.AgencyAddress,
	}
	if err := s.brokers.Create(ctx, broker); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "broker", broker.ID, "created", map[string]interface{}{"full_name": broker.FullName})
	return broker, nil
}

// Update saves changed broker fields.
func (s *BrokerService) Update(ctx context.Context, id uuid.UUID, req *models.CreateBrokerRequest) (*models.Broker, error) {
	broker, err := s.brokers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	broker.FullName = req.FullName
	broker.Phone = req.Phone
	broker.Email = req.Email
	broker.AgencyName = req.AgencyName
	broker.AgencyAddress = req.AgencyAddress

	if err := s.brokers.Update(ctx, broker); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "broker", broker.ID, "updated", map[string]interface{}{"full_name": broker.FullName})
	return broker, nil
}

// GetByID retrieves one broker.
func (s *BrokerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Broker, error) {
	return s.brokers.GetByID(ctx, id)
}

// List retrieves all brokers.
func (s *BrokerService) List(ctx context.Context) ([]models.Broker, error) {
	return s.brokers.List(ctx)
}
