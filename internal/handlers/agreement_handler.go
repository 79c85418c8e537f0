package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estate-service/internal/models"
	"estate-service/internal/repository"
	"estate-service/internal/services"
)

// AgreementHandler handles rent agreement endpoints.
type AgreementHandler struct {
	agreements *services.AgreementService
	dashboard  *services.DashboardService
}

// NewAgreementHandler creates a new agreement handler.
func NewAgreementHandler(agreements *services.AgreementService, dashboard *services.DashboardService) *AgreementHandler {
	return &AgreementHandler{agreements: agreements, dashboard: dashboard}
}

// agreementView decorates an agreement with its days-remaining figure.
type agreementView struct {
	models.RentAgreement
	DaysRemaining int `json:"days_remaining"`
}

func toAgreementView(a models.RentAgreement, now time.Time) agreementView {
	return agreementView{RentAgreement: a, DaysRemaining: a.DaysRemaining(now)}
}

// List returns all agreements, filtered in memory by q/status.
func (h *AgreementHandler) List(c *gin.Context) {
	agreements, err := h.agreements.List(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch agreements", err)
		return
	}

	query := c.Query("q")
	status := c.Query("status")
	now := time.Now()

	filtered := make([]agreementView, 0, len(agreements))
	for _, a := range agreements {
		if status != "" && a.Status != status {
			continue
		}
		propertyTitle := ""
		if a.Property != nil {
			propertyTitle = a.Property.Title
		}
		tenantName := ""
		if a.Tenant != nil {
			tenantName = a.Tenant.FullName
		}
		if !matchesQuery(query, propertyTitle, tenantName) {
			continue
		}
		filtered = append(filtered, toAgreementView(a, now))
	}

	ListResponse(c, "Agreements retrieved", filtered, len(filtered), len(agreements))
}

// Create runs the agreement creation saga.
func (h *AgreementHandler) Create(c *gin.Context) {
	var req models.CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	agreement, err := h.agreements.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate), errors.Is(err, services.ErrInvalidDateRange):
			ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, repository.ErrNotFound):
			ErrorResponse(c, http.StatusNotFound, "Property not found", err)
		default:
			ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		}
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	SuccessResponse(c, http.StatusCreated, "Agreement created", toAgreementView(*agreement, time.Now()))
}

// GetByID returns one agreement with relations joined.
func (h *AgreementHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid agreement ID", err)
		return
	}

	agreement, err := h.agreements.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Agreement not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch agreement", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Agreement retrieved", toAgreementView(*agreement, time.Now()))
}

// Update saves editable agreement fields.
func (h *AgreementHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid agreement ID", err)
		return
	}

	var req models.UpdateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	agreement, err := h.agreements.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate), errors.Is(err, services.ErrInvalidDateRange):
			ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, repository.ErrNotFound):
			ErrorResponse(c, http.StatusNotFound, "Agreement not found", nil)
		default:
			ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		}
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	SuccessResponse(c, http.StatusOK, "Agreement updated", toAgreementView(*agreement, time.Now()))
}
