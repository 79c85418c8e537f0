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

// RequirementHandler handles customer inquiry endpoints.
type RequirementHandler struct {
	requirements *services.RequirementService
	dashboard    *services.DashboardService
}

// NewRequirementHandler creates a new requirement handler.
func NewRequirementHandler(requirements *services.RequirementService, dashboard *services.DashboardService) *RequirementHandler {
	return &RequirementHandler{requirements: requirements, dashboard: dashboard}
}

// List returns all requirements, filtered in memory by q/status.
func (h *RequirementHandler) List(c *gin.Context) {
	requirements, err := h.requirements.List(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch requirements", err)
		return
	}

	query := c.Query("q")
	status := c.Query("status")

	filtered := make([]models.Requirement, 0, len(requirements))
	for _, r := range requirements {
		if status != "" && r.Status != status {
			continue
		}
		if !matchesQuery(query, r.CustomerName, r.CustomerPhone, r.PreferredLocation) {
			continue
		}
		filtered = append(filtered, r)
	}

	ListResponse(c, "Requirements retrieved", filtered, len(filtered), len(requirements))
}

// Create inserts a new requirement.
func (h *RequirementHandler) Create(c *gin.Context) {
	var req models.CreateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	requirement, err := h.requirements.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	SuccessResponse(c, http.StatusCreated, "Requirement created", requirement)
}

// GetByID returns one requirement.
func (h *RequirementHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid requirement ID", err)
		return
	}

	requirement, err := h.requirements.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Requirement not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch requirement", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Requirement retrieved", requirement)
}

// Update saves changed requirement fields.
func (h *RequirementHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid requirement ID", err)
		return
	}

	var req models.UpdateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	requirement, err := h.requirements.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate):
			ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, repository.ErrNotFound):
			ErrorResponse(c, http.StatusNotFound, "Requirement not found", nil)
		default:
			ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		}
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	SuccessResponse(c, http.StatusOK, "Requirement updated", requirement)
}
