package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	natsClient "estate-service/internal/nats"
)

var startTime = time.Now()

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db         *gorm.DB
	natsClient *natsClient.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, nc *natsClient.Client) *HealthHandler {
	return &HealthHandler{
		db:         db,
		natsClient: nc,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Service   string           `json:"service"`
	Version   string           `json:"version"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a health check result
type Check struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemInfo represents system runtime information
type SystemInfo struct {
	Goroutines  int    `json:"goroutines"`
	MemoryAlloc uint64 `json:"memory_alloc_mb"`
	MemorySys   uint64 `json:"memory_sys_mb"`
	NumCPU      int    `json:"num_cpu"`
	GoVersion   string `json:"go_version"`
}

// Health returns the service's liveness status.
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Service:   "estate-service",
		Version:   "1.0.0",
		Uptime:    time.Since(startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if c.Query("detailed") == "true" {
		response.Checks = map[string]Check{
			"database": h.checkDatabase(),
			"nats":     h.checkNATS(),
		}
		response.System = h.getSystemInfo()
	}

	c.JSON(http.StatusOK, response)
}

// Ready returns 503 until the database is reachable. NATS is optional
// infrastructure so a missing bus does not block readiness.
func (h *HealthHandler) Ready(c *gin.Context) {
	response := HealthResponse{
		Service:   "estate-service",
		Version:   "1.0.0",
		Uptime:    time.Since(startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]Check),
	}

	dbCheck := h.checkDatabase()
	response.Checks["database"] = dbCheck
	response.Checks["nats"] = h.checkNATS()

	if dbCheck.Status == "healthy" {
		response.Status = "ready"
		c.JSON(http.StatusOK, response)
		return
	}

	response.Status = "not ready"
	c.JSON(http.StatusServiceUnavailable, response)
}

func (h *HealthHandler) checkDatabase() Check {
	sqlDB, err := h.db.DB()
	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "Failed to get database instance",
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "Database ping failed",
		}
	}

	stats := sqlDB.Stats()

	return Check{
		Status:  "healthy",
		Message: "Database connected",
		Details: map[string]interface{}{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"max_open":         stats.MaxOpenConnections,
		},
	}
}

func (h *HealthHandler) checkNATS() Check {
	if h.natsClient == nil {
		return Check{
			Status:  "disabled",
			Message: "NATS not configured",
		}
	}
	if !h.natsClient.IsConnected() {
		return Check{
			Status:  "unhealthy",
			Message: "NATS disconnected",
		}
	}
	return Check{
		Status:  "healthy",
		Message: "NATS connected",
	}
}

func (h *HealthHandler) getSystemInfo() *SystemInfo {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return &SystemInfo{
		Goroutines:  runtime.NumGoroutine(),
		MemoryAlloc: mem.Alloc / 1024 / 1024,
		MemorySys:   mem.Sys / 1024 / 1024,
		NumCPU:      runtime.NumCPU(),
		GoVersion:   runtime.Version(),
	}
}
