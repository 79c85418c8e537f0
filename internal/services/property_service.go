package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"estate-service/internal/models"
	"estate-service/internal/nats"
	"estate-service/internal/repository"
	"estate-service/internal/saga"
)

// PropertyService orchestrates property writes. Owner and broker selections
// REPLACE the existing join rows: all rows for the property are deleted, then
// a single row is inserted for the selected party. The replacement runs as a
// saga so a failed insert restores the previous linkage instead of leaving
// the property unlinked.
type PropertyService struct {
	properties *repository.PropertyRepository
	activity   *ActivityRecorder
	events     *nats.Client
	logger     *logrus.Logger
}

// NewPropertyService creates a new property service.
func NewPropertyService(
	properties *repository.PropertyRepository,
	activity *ActivityRecorder,
	events *nats.Client,
	logger *logrus.Logger,
) *PropertyService {
	return &PropertyService{
		properties: properties,
		activity:   activity,
		events:     events,
		logger:     logger,
	}
}

// Create inserts a property and links the selected owner and broker.
func (s *PropertyService) Create(ctx context.Context, req *models.CreatePropertyRequest) (*models.Property, error) {
	property := &models.Property{
		Title:            req.Title,
		Type:             req.Type,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		AreaSqft:         req.AreaSqft,
		Price:            req.Price,
		Status:           req.Status,
		FurnishingStatus: req.FurnishingStatus,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		Description:      req.Description,
	}
	if property.FurnishingStatus == "" {
		property.FurnishingStatus = "unfurnished"
	}

	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}

	// Linkage after the insert; on a fresh property there is no previous
	// linkage to restore, so plain sequential writes suffice.
	if req.OwnerID != nil {
		if err := s.properties.InsertOwnerLink(ctx, property.ID, *req.OwnerID, 100); err != nil {
			s.logger.WithError(err).WithField("property_id", property.ID).Warn("Failed to link owner on create")
		}
	}
	if req.BrokerID != nil {
		if err := s.properties.InsertBrokerLink(ctx, property.ID, *req.BrokerID); err != nil {
			s.logger.WithError(err).WithField("property_id", property.ID).Warn("Failed to link broker on create")
		}
	}

	s.activity.Record(ctx, "property", property.ID, "created", map[string]interface{}{
		"title":  property.Title,
		"status": property.Status,
	})
	s.publish(ctx, nats.EventPropertyCreated, property.ID, property.Title)

	return s.properties.GetByID(ctx, property.ID)
}

// Update saves property fields and replaces the owner/broker linkage.
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req *models.UpdatePropertyRequest) (*models.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	property.Title = req.Title
	property.Type = req.Type
	property.Address = req.Address
	property.City = req.City
	property.State = req.State
	property.ZipCode = req.ZipCode
	property.AreaSqft = req.AreaSqft
	property.Price = req.Price
	property.Status = req.Status
	if req.FurnishingStatus != "" {
		property.FurnishingStatus = req.FurnishingStatus
	}
	property.Bedrooms = req.Bedrooms
	property.Bathrooms = req.Bathrooms
	property.Description = req.Description

	// Clear loaded associations so Save only touches the property row.
	property.Owners = nil
	property.Brokers = nil
	property.Agreements = nil

	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}

	if err := s.ReplaceOwner(ctx, id, req.OwnerID); err != nil {
		return nil, err
	}
	if err := s.ReplaceBroker(ctx, id, req.BrokerID); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "property", property.ID, "updated", map[string]interface{}{
		"title":  property.Title,
		"status": property.Status,
	})
	s.publish(ctx, nats.EventPropertyUpdated, property.ID, property.Title)

	return s.properties.GetByID(ctx, id)
}

// ReplaceOwner swaps the property's ownership rows for a single row at 100%,
// or clears them when ownerID is nil. The previous rows are restored if the
// new insert fails.
func (s *PropertyService) ReplaceOwner(ctx context.Context, propertyID uuid.UUID, ownerID *uuid.UUID) error {
	previous, err := s.properties.GetOwnerLinks(ctx, propertyID)
	if err != nil {
		return err
	}

	sg := saga.New("property.replace_owner", s.logger).
		AddStep(saga.Step{
			Name: "delete_existing_links",
			Run: func(ctx context.Context) error {
				return s.properties.DeleteOwnerLinks(ctx, propertyID)
			},
			Compensate: func(ctx context.Context) error {
				for _, link := range previous {
					if err := s.properties.InsertOwnerLink(ctx, link.PropertyID, link.OwnerID, link.OwnershipPercentage); err != nil {
						return err
					}
				}
				return nil
			},
		})

	if ownerID != nil {
		sg.AddStep(saga.Step{
			Name: "insert_new_link",
			Run: func(ctx context.Context) error {
				return s.properties.InsertOwnerLink(ctx, propertyID, *ownerID, 100)
			},
		})
	}

	if err := sg.Execute(ctx); err != nil {
		return fmt.Errorf("failed to replace owner: %w", err)
	}
	return nil
}

// ReplaceBroker swaps the property's broker-assignment rows for a single row,
// or clears them when brokerID is nil.
func (s *PropertyService) ReplaceBroker(ctx context.Context, propertyID uuid.UUID, brokerID *uuid.UUID) error {
	previous, err := s.properties.GetBrokerLinks(ctx, propertyID)
	if err != nil {
		return err
	}

	sg := saga.New("property.replace_broker", s.logger).
		AddStep(saga.Step{
			Name: "delete_existing_links",
			Run: func(ctx context.Context) error {
				return s.properties.DeleteBrokerLinks(ctx, propertyID)
			},
			Compensate: func(ctx context.Context) error {
				for _, link := range previous {
					if err := s.properties.InsertBrokerLink(ctx, link.PropertyID, link.BrokerID); err != nil {
						return err
					}
				}
				return nil
			},
		})

	if brokerID != nil {
		sg.AddStep(saga.Step{
			Name: "insert_new_link",
			Run: func(ctx context.Context) error {
				return s.properties.InsertBrokerLink(ctx, propertyID, *brokerID)
			},
		})
	}

	if err := sg.Execute(ctx); err != nil {
		return fmt.Errorf("failed to replace broker: %w", err)
	}
	return nil
}

// GetByID retrieves one property with relations.
func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return s.properties.GetByID(ctx, id)
}

// List retrieves all properties.
func (s *PropertyService) List(ctx context.Context) ([]models.Property, error) {
	return s.properties.List(ctx)
}

func (s *PropertyService) publish(ctx context.Context, eventType string, id uuid.UUID, detail string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, id, detail); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("Failed to publish event")
	}
}
