package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"estate-service/internal/config"
	"estate-service/internal/models"
	"estate-service/internal/repository"
	"estate-service/internal/services"

	"github.com/sirupsen/logrus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.Owner{},
		&models.Broker{},
		&models.Tenant{},
		&models.PropertyOwner{},
		&models.PropertyBroker{},
		&models.RentAgreement{},
		&models.Payment{},
		&models.Requirement{},
		&models.ActivityLog{},
	))

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	propertyRepo := repository.NewPropertyRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	agreementRepo := repository.NewAgreementRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	recorder := services.NewActivityRecorder(activityRepo, logger)
	propertySvc := services.NewPropertyService(propertyRepo, recorder, nil, logger)
	ownerSvc := services.NewOwnerService(ownerRepo, recorder, logger)
	tenantSvc := services.NewTenantService(tenantRepo, recorder, logger)
	agreementSvc := services.NewAgreementService(agreementRepo, propertyRepo, recorder, nil, logger)
	paymentSvc := services.NewPaymentService(paymentRepo, agreementRepo, recorder, nil, logger)
	dashboardSvc := services.NewDashboardService(
		propertyRepo, ownerRepo, tenantRepo, agreementRepo, paymentRepo,
		requirementRepo, activityRepo, nil,
		config.DashboardConfig{CacheTTLSeconds: 30, RecentLimit: 5, ExpiryWindow: 30},
		logger,
	)

	propertyHandler := NewPropertyHandler(propertySvc, dashboardSvc)
	ownerHandler := NewOwnerHandler(ownerSvc, dashboardSvc)
	tenantHandler := NewTenantHandler(tenantSvc, dashboardSvc)
	agreementHandler := NewAgreementHandler(agreementSvc, dashboardSvc)
	paymentHandler := NewPaymentHandler(paymentSvc, dashboardSvc)
	dashboardHandler := NewDashboardHandler(dashboardSvc)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.GET("/properties", propertyHandler.List)
		v1.POST("/properties", propertyHandler.Create)
		v1.GET("/properties/:id", propertyHandler.GetByID)
		v1.PUT("/properties/:id", propertyHandler.Update)

		v1.GET("/owners", ownerHandler.List)
		v1.POST("/owners", ownerHandler.Create)

		v1.GET("/tenants", tenantHandler.List)
		v1.POST("/tenants", tenantHandler.Create)

		v1.GET("/rent-agreements", agreementHandler.List)
		v1.POST("/rent-agreements", agreementHandler.Create)

		v1.GET("/payments", paymentHandler.List)
		v1.POST("/payments", paymentHandler.Create)
		v1.GET("/payments/export", paymentHandler.Export)

		v1.GET("/dashboard/summary", dashboardHandler.Summary)
	}

	return &testServer{db: db, router: router}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateProperty_MissingRequiredFieldsWritesNothing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/properties", gin.H{
		"title": "Incomplete Listing",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])

	var count int64
	require.NoError(t, s.db.Model(&models.Property{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProperty_ReturnsCreatedEnvelope(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/properties", gin.H{
		"title":     "DHA Phase 5 Upper Portion",
		"type":      "residential",
		"address":   "House 89, Block C",
		"city":      "Lahore",
		"area_sqft": 2250,
		"price":     85000,
		"status":    "for_rent",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "DHA Phase 5 Upper Portion", data["title"])
	assert.NotEmpty(t, data["id"])
}

func TestListProperties_FiltersInMemory(t *testing.T) {
	s := newTestServer(t)

	for _, p := range []gin.H{
		{"title": "Gulberg Office Floor", "type": "commercial", "address": "Plaza 7", "area_sqft": 3000, "price": 150000, "status": "for_rent"},
		{"title": "Model Town House", "type": "residential", "address": "Block D", "area_sqft": 2000, "price": 60000, "status": "for_rent"},
		{"title": "Cantt Bungalow", "type": "residential", "address": "Mall Road", "area_sqft": 4000, "price": 250000, "status": "for_sale"},
	} {
		w := s.do(t, http.MethodPost, "/api/v1/properties", p)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := s.do(t, http.MethodGet, "/api/v1/properties?type=residential&status=for_rent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(3), body["total"])

	w = s.do(t, http.MethodGet, "/api/v1/properties?q=gulberg", nil)
	body = decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func TestGetProperty_InvalidAndUnknownIDs(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/properties/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/properties/0b38e339-07c5-4a41-a0c3-a8c016e9ab4b", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAgreement_FullFlow(t *testing.T) {
	s := newTestServer(t)

	owner := &models.Owner{FullName: "Ahmed Khan", Phone: "0300-1234567"}
	tenant := &models.Tenant{FullName: "Usman Tariq", Phone: "0302-1112223"}
	require.NoError(t, s.db.Create(owner).Error)
	require.NoError(t, s.db.Create(tenant).Error)

	w := s.do(t, http.MethodPost, "/api/v1/properties", gin.H{
		"title": "Wapda Town House", "type": "residential", "address": "Street 4",
		"area_sqft": 1800, "price": 45000, "status": "for_rent",
		"owner_id": owner.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	propertyID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = s.do(t, http.MethodPost, "/api/v1/rent-agreements", gin.H{
		"property_id":  propertyID,
		"tenant_id":    tenant.ID,
		"owner_id":     owner.ID,
		"start_date":   "2026-01-01",
		"end_date":     "2026-12-31",
		"monthly_rent": 45000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])
	assert.Contains(t, data, "days_remaining")

	// Property flips to rented.
	w = s.do(t, http.MethodGet, "/api/v1/properties/"+propertyID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	property := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "rented", property["status"])
}

func TestCreateAgreement_BadDatesReturn400(t *testing.T) {
	s := newTestServer(t)

	owner := &models.Owner{FullName: "Ahmed Khan", Phone: "0300-1234567"}
	tenant := &models.Tenant{FullName: "Usman Tariq", Phone: "0302-1112223"}
	property := &models.Property{Title: "Wapda Town House", Type: "residential", Address: "Street 4", AreaSqft: 1800, Price: 45000, Status: models.PropertyForRent}
	require.NoError(t, s.db.Create(owner).Error)
	require.NoError(t, s.db.Create(tenant).Error)
	require.NoError(t, s.db.Create(property).Error)

	w := s.do(t, http.MethodPost, "/api/v1/rent-agreements", gin.H{
		"property_id":  property.ID,
		"tenant_id":    tenant.ID,
		"owner_id":     owner.ID,
		"start_date":   "2026-12-31",
		"end_date":     "2026-01-01",
		"monthly_rent": 45000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePayment_UnknownAgreementReturns404(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/payments", gin.H{
		"rent_agreement_id": "0b38e339-07c5-4a41-a0c3-a8c016e9ab4b",
		"amount":            45000,
		"payment_date":      "2026-02-01",
		"payment_method":    "cash",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportPayments_ReturnsWorkbook(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/payments/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payments-")
	assert.NotZero(t, w.Body.Len())
}

func TestDashboardSummary_Endpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Contains(t, data, "total_properties")
	assert.Contains(t, data, "total_collected")
	assert.Contains(t, data, "expiring_agreements")
}

func TestCreateOwner_ValidatesEmail(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/owners", gin.H{
		"full_name": "Ahmed Khan",
		"phone":     "0300-1234567",
		"email":     "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/owners", gin.H{
		"full_name": "Ahmed Khan",
		"phone":     "0300-1234567",
		"email":     "ahmed.khan@example.com",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}
