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

// BrokerHandler handles broker endpoints.
type BrokerHandler struct {
	brokers *services.BrokerService
}

// NewBrokerHandler creates a new broker handler.
func NewBrokerHandler(brokers *services.BrokerService) *BrokerHandler {
	return &BrokerHandler{brokers: brokers}
}

// List returns all brokers, filtered in memory by q.
func (h *BrokerHandler) List(c *gin.Context) {
	brokers, err := h.brokers.List(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch brokers", err)
		return
	}

	query := c.Query("q")
	filtered := make([]models.Broker, 0, len(brokers))
	for _, b := range brokers {
		agency := ""
		if b.AgencyName != nil {
			agency = *b.AgencyName
		}
		if !matchesQuery(query, b.FullName, b.Phone, agency) {
			continue
		}
		filtered = append(filtered, b)
	}

	ListResponse(c, "Brokers retrieved", filtered, len(filtered), len(brokers))
}

// Create inserts a new broker.
func (h *BrokerHandler) Create(c *gin.Context) {
	var req models.CreateBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	broker, err := h.brokers.Create(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Broker created", broker)
}

// GetByID returns one broker.
func (h *BrokerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid broker ID", err)
		return
	}

	broker, err := h.brokers.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Broker not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch broker", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Broker retrieved", broker)
}

// Update saves changed broker fields.
func (h *BrokerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid broker ID", err)
		return
	}

	var req models.CreateBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	broker, err := h.brokers.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Broker not found", nil)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Broker updated", broker)
}
