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

// PropertyHandler handles property endpoints.
type PropertyHandler struct {
	properties *services.PropertyService
	dashboard  *services.DashboardService
}

// NewPropertyHandler creates a new property handler.
func NewPropertyHandler(properties *services.PropertyService, dashboard *services.DashboardService) *PropertyHandler {
	return &PropertyHandler{properties: properties, dashboard: dashboard}
}

// List returns all properties, filtered in memory by q/status/type.
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.properties.List(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch properties", err)
		return
	}

	query := c.Query("q")
	status := c.Query("status")
	propertyType := c.Query("type")

	filtered := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if status != "" && p.Status != status {
			continue
		}
		if propertyType != "" && p.Type != propertyType {
			continue
		}
		if !matchesQuery(query, p.Title, p.Address, p.City) {
			continue
		}
		filtered = append(filtered, p)
	}

	ListResponse(c, "Properties retrieved", filtered, len(filtered), len(properties))
}

// Create inserts a property with optional owner/broker linkage.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req models.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	property, err := h.properties.Create(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	SuccessResponse(c, http.StatusCreated, "Property created", property)
}

// GetByID returns one property with owners, brokers and agreements joined.
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID", err)
		return
	}

	property, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Property not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch property", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Property retrieved", property)
}

// Update saves property fields and replaces owner/broker linkage.
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID", err)
		return
	}

	var req models.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	property, err := h.properties.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Property not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	SuccessResponse(c, http.StatusOK, "Property updated", property)
}
