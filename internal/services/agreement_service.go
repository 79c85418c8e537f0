package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/prometheus/client_golang/prometheus"

	"estate-service/internal/models"
	"estate-service/internal/nats"
	"estate-service/internal/repository"
	"estate-service/internal/saga"
)

// AgreementService orchestrates rent agreement writes. Creation is a saga
// spanning three tables: the agreement insert, an idempotent ownership link,
// and the property status flip to rented. A failure in a later step unwinds
// the earlier ones so a half-created agreement never survives.
type AgreementService struct {
	agreements *repository.AgreementRepository
	properties *repository.PropertyRepository
	activity   *ActivityRecorder
	events     *nats.Client
	logger     *logrus.Logger

	createdCounter prometheus.Counter
	sweepCounter   prometheus.Counter
}

// SetMetrics wires optional business counters.
func (s *AgreementService) SetMetrics(created, sweeps prometheus.Counter) {
	s.createdCounter = created
	s.sweepCounter = sweeps
}

// NewAgreementService creates a new agreement service.
func NewAgreementService(
	agreements *repository.AgreementRepository,
	properties *repository.PropertyRepository,
	activity *ActivityRecorder,
	events *nats.Client,
	logger *logrus.Logger,
) *AgreementService {
	return &AgreementService{
		agreements: agreements,
		properties: properties,
		activity:   activity,
		events:     events,
		logger:     logger,
	}
}

// Create validates and runs the agreement creation saga.
func (s *AgreementService) Create(ctx context.Context, req *models.CreateAgreementRequest) (*models.RentAgreement, error) {
	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := models.ParseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidDateRange
	}

	// Referenced rows must exist before any write happens.
	previousStatus, err := s.properties.GetStatus(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.AgreementActive
	}

	agreement := &models.RentAgreement{
		PropertyID:      req.PropertyID,
		TenantID:        req.TenantID,
		OwnerID:         req.OwnerID,
		StartDate:       startDate,
		EndDate:         endDate,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		TermsConditions: req.TermsConditions,
		Status:          status,
	}

	var linkInserted bool

	sg := saga.New("agreement.create", s.logger).
		AddStep(saga.Step{
			Name: "insert_agreement",
			Run: func(ctx context.Context) error {
				return s.agreements.Create(ctx, agreement)
			},
			Compensate: func(ctx context.Context) error {
				return s.agreements.Delete(ctx, agreement.ID)
			},
		}).
		AddStep(saga.Step{
			// Idempotent: an existing row for the pair is left untouched
			// so re-signing with the same owner never duplicates linkage.
			Name: "ensure_ownership_link",
			Run: func(ctx context.Context) error {
				exists, err := s.properties.HasOwnerLink(ctx, req.PropertyID, req.OwnerID)
				if err != nil {
					return err
				}
				if exists {
					return nil
				}
				if err := s.properties.InsertOwnerLink(ctx, req.PropertyID, req.OwnerID, 100); err != nil {
					return err
				}
				linkInserted = true
				return nil
			},
			Compensate: func(ctx context.Context) error {
				if !linkInserted {
					return nil
				}
				return s.properties.DeleteOwnerLink(ctx, req.PropertyID, req.OwnerID)
			},
		}).
		AddStep(saga.Step{
			Name: "mark_property_rented",
			Run: func(ctx context.Context) error {
				return s.properties.SetStatus(ctx, req.PropertyID, models.PropertyRented)
			},
			Compensate: func(ctx context.Context) error {
				return s.properties.SetStatus(ctx, req.PropertyID, previousStatus)
			},
		})

	if err := sg.Execute(ctx); err != nil {
		return nil, err
	}

	if s.createdCounter != nil {
		s.createdCounter.Inc()
	}
	s.activity.Record(ctx, "rent_agreement", agreement.ID, "created", map[string]interface{}{
		"property_id": agreement.PropertyID,
		"tenant_id":   agreement.TenantID,
	})
	s.publish(ctx, nats.EventAgreementCreated, agreement.ID, "")

	return s.agreements.GetByID(ctx, agreement.ID)
}

// Update saves editable agreement fields. Linkage and property status are
// creation-time concerns and are not touched here.
func (s *AgreementService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateAgreementRequest) (*models.RentAgreement, error) {
	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := models.ParseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidDateRange
	}

	agreement, err := s.agreements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	agreement.StartDate = startDate
	agreement.EndDate = endDate
	agreement.MonthlyRent = req.MonthlyRent
	agreement.SecurityDeposit = req.SecurityDeposit
	agreement.TermsConditions = req.TermsConditions
	agreement.Status = req.Status

	agreement.Property = nil
	agreement.Tenant = nil
	agreement.Owner = nil
	agreement.Payments = nil

	if err := s.agreements.Update(ctx, agreement); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "rent_agreement", agreement.ID, "updated", map[string]interface{}{
		"status": agreement.Status,
	})
	s.publish(ctx, nats.EventAgreementUpdated, agreement.ID, agreement.Status)

	return s.agreements.GetByID(ctx, id)
}

// GetByID retrieves one agreement with relations.
func (s *AgreementService) GetByID(ctx context.Context, id uuid.UUID) (*models.RentAgreement, error) {
	return s.agreements.GetByID(ctx, id)
}

// List retrieves all agreements.
func (s *AgreementService) List(ctx context.Context) ([]models.RentAgreement, error) {
	return s.agreements.List(ctx)
}

// ExpireOverdue transitions active agreements past their end date to expired.
// Property status is left alone: an expired tenancy does not re-list the
// property automatically.
func (s *AgreementService) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.agreements.ExpireOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	if s.sweepCounter != nil {
		s.sweepCounter.Inc()
	}
	if expired > 0 {
		s.logger.WithField("count", expired).Info("Expired overdue agreements")
		s.publish(ctx, nats.EventAgreementExpired, uuid.Nil, "")
	}
	return expired, nil
}

func (s *AgreementService) publish(ctx context.Context, eventType string, id uuid.UUID, detail string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, id, detail); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("Failed to publish event")
	}
}
