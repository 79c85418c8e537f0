package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"estate-service/internal/models"
	"estate-service/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database keeps all pooled connections on the same
	// store while isolating tests from each other.
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
	return db
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestRecorder(db *gorm.DB) *ActivityRecorder {
	return NewActivityRecorder(repository.NewActivityRepository(db), quietLogger())
}

func seedOwner(t *testing.T, db *gorm.DB, name string) *models.Owner {
	t.Helper()
	owner := &models.Owner{FullName: name, Phone: "0300-1234567"}
	require.NoError(t, db.Create(owner).Error)
	return owner
}

func seedBroker(t *testing.T, db *gorm.DB, name string) *models.Broker {
	t.Helper()
	broker := &models.Broker{FullName: name, Phone: "0301-7654321"}
	require.NoError(t, db.Create(broker).Error)
	return broker
}

func seedTenant(t *testing.T, db *gorm.DB, name string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{FullName: name, Phone: "0302-1112223"}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func seedProperty(t *testing.T, db *gorm.DB, title, status string) *models.Property {
	t.Helper()
	property := &models.Property{
		Title:            title,
		Type:             "residential",
		Address:          "House 12, Street 4",
		City:             "Lahore",
		AreaSqft:         1800,
		Price:            45000,
		Status:           status,
		FurnishingStatus: "unfurnished",
	}
	require.NoError(t, db.Create(property).Error)
	return property
}
