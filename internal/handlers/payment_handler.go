package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estate-service/internal/models"
	"estate-service/internal/repository"
	"estate-service/internal/services"
)

// PaymentHandler handles payment ledger endpoints.
type PaymentHandler struct {
	payments  *services.PaymentService
	dashboard *services.DashboardService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(payments *services.PaymentService, dashboard *services.DashboardService) *PaymentHandler {
	return &PaymentHandler{payments: payments, dashboard: dashboard}
}

// List returns all payments, filtered in memory by q/status, or the payments
// of one agreement when rent_agreement_id is given.
func (h *PaymentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		payments []models.Payment
		err      error
	)
	if agreementParam := c.Query("rent_agreement_id"); agreementParam != "" {
		agreementID, parseErr := uuid.Parse(agreementParam)
		if parseErr != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid agreement ID", parseErr)
			return
		}
		payments, err = h.payments.ListByAgreement(ctx, agreementID)
	} else {
		payments, err = h.payments.List(ctx)
	}
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch payments", err)
		return
	}

	query := c.Query("q")
	status := c.Query("status")

	filtered := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if status != "" && p.Status != status {
			continue
		}
		propertyTitle := ""
		tenantName := ""
		if p.RentAgreement != nil {
			if p.RentAgreement.Property != nil {
				propertyTitle = p.RentAgreement.Property.Title
			}
			if p.RentAgreement.Tenant != nil {
				tenantName = p.RentAgreement.Tenant.FullName
			}
		}
		reference := ""
		if p.ReferenceNumber != nil {
			reference = *p.ReferenceNumber
		}
		if !matchesQuery(query, propertyTitle, tenantName, reference) {
			continue
		}
		filtered = append(filtered, p)
	}

	ListResponse(c, "Payments retrieved", filtered, len(filtered), len(payments))
}

// Create records a payment against an agreement.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	payment, err := h.payments.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate):
			ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, repository.ErrNotFound):
			ErrorResponse(c, http.StatusNotFound, "Agreement not found", err)
		default:
			ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		}
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	SuccessResponse(c, http.StatusCreated, "Payment recorded", payment)
}

// GetByID returns one payment with its agreement chain joined.
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid payment ID", err)
		return
	}

	payment, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Payment not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch payment", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Payment retrieved", payment)
}

// Export streams the full ledger as an xlsx workbook.
func (h *PaymentHandler) Export(c *gin.Context) {
	buf, err := h.payments.ExportWorkbook(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to export payments", err)
		return
	}

	filename := fmt.Sprintf("payments-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
