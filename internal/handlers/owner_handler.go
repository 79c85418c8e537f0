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

// OwnerHandler handles owner endpoints.
type OwnerHandler struct {
	owners    *services.OwnerService
	dashboard *services.DashboardService
}

// NewOwnerHandler creates a new owner handler.
func NewOwnerHandler(owners *services.OwnerService, dashboard *services.DashboardService) *OwnerHandler {
	return &OwnerHandler{owners: owners, dashboard: dashboard}
}

// List returns all owners, filtered in memory by q.
func (h *OwnerHandler) List(c *gin.Context) {
	owners, err := h.owners.List(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch owners", err)
		return
	}

	query := c.Query("q")
	filtered := make([]models.Owner, 0, len(owners))
	for _, o := range owners {
		if !matchesQuery(query, o.FullName, o.Phone) {
			continue
		}
		filtered = append(filtered, o)
	}

	ListResponse(c, "Owners retrieved", filtered, len(filtered), len(owners))
}

// Create inserts a new owner.
func (h *OwnerHandler) Create(c *gin.Context) {
	var req models.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	owner, err := h.owners.Create(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	SuccessResponse(c, http.StatusCreated, "Owner created", owner)
}

// GetByID returns one owner with owned properties joined.
func (h *OwnerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid owner ID", err)
		return
	}

	owner, err := h.owners.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Owner not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch owner", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Owner retrieved", owner)
}

// Update saves changed owner fields.
func (h *OwnerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid owner ID", err)
		return
	}

	var req models.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	owner, err := h.owners.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Owner not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Owner updated", owner)
}
