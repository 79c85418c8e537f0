package background

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"estate-service/internal/config"
	"estate-service/internal/services"
)

// Runner schedules the agreement expiry sweep. Agreements whose end date has
// passed are flipped to expired on a cron schedule; one sweep also runs at
// startup to catch anything that lapsed while the service was down.
type Runner struct {
	agreementSvc *services.AgreementService
	cfg          config.SweepConfig
	cron         *cron.Cron
	logger       *logrus.Logger
}

// NewRunner creates a new background runner.
func NewRunner(agreementSvc *services.AgreementService, cfg config.SweepConfig, logger *logrus.Logger) *Runner {
	return &Runner{
		agreementSvc: agreementSvc,
		cfg:          cfg,
		cron:         cron.New(),
		logger:       logger,
	}
}

// Start registers the sweep schedule and begins processing.
func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc(r.cfg.Schedule, r.executeSweep); err != nil {
		return err
	}

	r.cron.Start()
	r.logger.WithField("schedule", r.cfg.Schedule).Info("Agreement expiry sweep scheduled")

	go r.executeSweep()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	select {
	case <-ctx.Done():
		r.logger.Info("Background runner stopped")
	case <-time.After(30 * time.Second):
		r.logger.Warn("Background runner stop timeout")
	}
}

func (r *Runner) executeSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	expired, err := r.agreementSvc.ExpireOverdue(ctx, time.Now())
	if err != nil {
		r.logger.WithError(err).Error("Agreement expiry sweep failed")
		return
	}
	if expired > 0 {
		r.logger.WithField("count", expired).Info("Agreement expiry sweep completed")
	}
}
