package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estate-service/internal/models"
	"estate-service/internal/repository"
	"estate-service/internal/services"
)

// TenantHandler handles renter endpoints.
type TenantHandler struct {
	tenants   *services.TenantService
	dashboard *services.DashboardService
}

// NewTenantHandler creates a new tenant handler.
func NewTenantHandler(tenants *services.TenantService, dashboard *services.DashboardService) *TenantHandler {
	return &TenantHandler{tenants: tenants, dashboard: dashboard}
}

// List returns all tenants, filtered in memory by q.
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenants.List(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch tenants", err)
		return
	}

	query := c.Query("q")
	filtered := make([]models.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if !matchesQuery(query, t.FullName, t.Phone) {
			continue
		}
		filtered = append(filtered, t)
	}

	ListResponse(c, "Tenants retrieved", filtered, len(filtered), len(tenants))
}

// Create inserts a new tenant.
func (h *TenantHandler) Create(c *gin.Context) {
	var req models.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	tenant, err := h.tenants.Create(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	SuccessResponse(c, http.StatusCreated, "Tenant created", tenant)
}

// GetByID returns one tenant with their agreements joined.
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid tenant ID", err)
		return
	}

	tenant, err := h.tenants.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Tenant not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch tenant", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Tenant retrieved", tenant)
}

// Update saves changed tenant fields.
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid tenant ID", err)
		return
	}

	var req models.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	tenant, err := h.tenants.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Tenant not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Tenant updated", tenant)
}
