package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"estate-service/internal/models"
	"estate-service/internal/repository"
)

// ActivityRecorder appends audit entries for entity changes. Recording is
// best-effort: a failed write is logged and swallowed so it can never fail
// the operation that triggered it.
type ActivityRecorder struct {
	repo   *repository.ActivityRepository
	logger *logrus.Logger
}

// NewActivityRecorder creates a new activity recorder.
func NewActivityRecorder(repo *repository.ActivityRepository, logger *logrus.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, logger: logger}
}

// Record appends one audit entry.
func (a *ActivityRecorder) Record(ctx context.Context, entityType string, entityID uuid.UUID, action string, details map[string]interface{}) {
	if a == nil || a.repo == nil {
		return
	}

	entry := &models.ActivityLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}
	if len(details) > 0 {
		if data, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(data)
		}
	}

	if err := a.repo.Log(ctx, entry); err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{
			"entity_type": entityType,
			"entity_id":   entityID,
			"action":      action,
		}).Warn("Failed to record activity")
	}
}
