package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate-service/internal/services"
)

// DashboardHandler serves the aggregated landing-screen payload.
type DashboardHandler struct {
	dashboard *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary returns counts, recent rows and near-term expirations.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to build dashboard summary", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Dashboard summary retrieved", summary)
}
