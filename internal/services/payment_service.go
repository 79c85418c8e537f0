package services

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"estate-service/internal/models"
	"estate-service/internal/nats"
	"estate-service/internal/reports"
	"estate-service/internal/repository"
)

// PaymentService records money received against agreements and builds the
// downloadable ledger export.
type PaymentService struct {
	payments   *repository.PaymentRepository
	agreements *repository.AgreementRepository
	activity   *ActivityRecorder
	events     *nats.Client
	logger     *logrus.Logger

	recordedCounter prometheus.Counter
}

// SetMetrics wires the optional payments-recorded counter.
func (s *PaymentService) SetMetrics(recorded prometheus.Counter) {
	s.recordedCounter = recorded
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	payments *repository.PaymentRepository,
	agreements *repository.AgreementRepository,
	activity *ActivityRecorder,
	events *nats.Client,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		payments:   payments,
		agreements: agreements,
		activity:   activity,
		events:     events,
		logger:     logger,
	}
}

// Create validates the referenced agreement and records the payment.
func (s *PaymentService) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	paymentDate, err := models.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// Agreement must exist before anything is written.
	if _, err := s.agreements.GetByID(ctx, req.RentAgreementID); err != nil {
		return nil, err
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = "rent"
	}
	status := req.Status
	if status == "" {
		status = models.PaymentCompleted
	}

	payment := &models.Payment{
		RentAgreementID: req.RentAgreementID,
		PaymentType:     paymentType,
		Amount:          req.Amount,
		PaymentDate:     paymentDate,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		Status:          status,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	if s.recordedCounter != nil {
		s.recordedCounter.Inc()
	}
	s.activity.Record(ctx, "payment", payment.ID, "created", map[string]interface{}{
		"rent_agreement_id": payment.RentAgreementID,
		"amount":            payment.Amount,
	})
	if s.events != nil {
		if err := s.events.Publish(ctx, nats.EventPaymentRecorded, payment.ID, payment.PaymentType); err != nil {
			s.logger.WithError(err).Warn("Failed to publish payment event")
		}
	}

	return s.payments.GetByID(ctx, payment.ID)
}

// GetByID retrieves one payment with its agreement chain.
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

// List retrieves all payments newest-first.
func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx)
}

// ListByAgreement retrieves the payments for one agreement.
func (s *PaymentService) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]models.Payment, error) {
	return s.payments.ListByAgreement(ctx, agreementID)
}

// ExportWorkbook renders the full ledger as an xlsx workbook.
func (s *PaymentService) ExportWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	return reports.PaymentsWorkbook(payments)
}
