package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"estate-service/internal/config"
	"estate-service/internal/models"
	"estate-service/internal/redis"
	"estate-service/internal/repository"
)

// DashboardSummary is the aggregate payload behind the landing screen.
type DashboardSummary struct {
	TotalProperties     int64                  `json:"total_properties"`
	TotalOwners         int64                  `json:"total_owners"`
	TotalTenants        int64                  `json:"total_tenants"`
	ActiveAgreements    int64                  `json:"active_agreements"`
	OpenRequirements    int64                  `json:"open_requirements"`
	TotalCollected      float64                `json:"total_collected"`
	RecentProperties    []models.Property      `json:"recent_properties"`
	RecentPayments      []models.Payment       `json:"recent_payments"`
	ExpiringAgreements  []models.RentAgreement `json:"expiring_agreements"`
	RecentActivity      []models.ActivityLog   `json:"recent_activity"`
	GeneratedAt         time.Time              `json:"generated_at"`
}

// DashboardService aggregates counts and recent rows for the landing screen.
// The widgets are independent, so their queries run concurrently; the result
// is cached in Redis for a short TTL when a cache is configured.
type DashboardService struct {
	properties   *repository.PropertyRepository
	owners       *repository.OwnerRepository
	tenants      *repository.TenantRepository
	agreements   *repository.AgreementRepository
	payments     *repository.PaymentRepository
	requirements *repository.RequirementRepository
	activity     *repository.ActivityRepository
	cache        *redis.Client
	cfg          config.DashboardConfig
	logger       *logrus.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	properties *repository.PropertyRepository,
	owners *repository.OwnerRepository,
	tenants *repository.TenantRepository,
	agreements *repository.AgreementRepository,
	payments *repository.PaymentRepository,
	requirements *repository.RequirementRepository,
	activity *repository.ActivityRepository,
	cache *redis.Client,
	cfg config.DashboardConfig,
	logger *logrus.Logger,
) *DashboardService {
	return &DashboardService{
		properties:   properties,
		owners:       owners,
		tenants:      tenants,
		agreements:   agreements,
		payments:     payments,
		requirements: requirements,
		activity:     activity,
		cache:        cache,
		cfg:          cfg,
		logger:       logger,
	}
}

// Summary builds the dashboard payload, serving from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if s.cache != nil {
		var cached DashboardSummary
		hit, err := s.cache.GetJSON(ctx, redis.DashboardSummaryKey, &cached)
		if err != nil {
			s.logger.WithError(err).Warn("Dashboard cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	summary := &DashboardSummary{GeneratedAt: time.Now().UTC()}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}

	run(func() error {
		count, err := s.properties.Count(ctx)
		summary.TotalProperties = count
		return err
	})
	run(func() error {
		count, err := s.owners.Count(ctx)
		summary.TotalOwners = count
		return err
	})
	run(func() error {
		count, err := s.tenants.Count(ctx)
		summary.TotalTenants = count
		return err
	})
	run(func() error {
		count, err := s.agreements.CountByStatus(ctx, models.AgreementActive)
		summary.ActiveAgreements = count
		return err
	})
	run(func() error {
		count, err := s.requirements.CountOpen(ctx)
		summary.OpenRequirements = count
		return err
	})
	run(func() error {
		total, err := s.payments.SumCompleted(ctx)
		summary.TotalCollected = total
		return err
	})
	run(func() error {
		rows, err := s.properties.ListRecent(ctx, s.cfg.RecentLimit)
		summary.RecentProperties = rows
		return err
	})
	run(func() error {
		rows, err := s.payments.ListRecent(ctx, s.cfg.RecentLimit)
		summary.RecentPayments = rows
		return err
	})
	run(func() error {
		rows, err := s.agreements.ExpiringWithin(ctx, s.cfg.ExpiryWindow, s.cfg.RecentLimit)
		summary.ExpiringAgreements = rows
		return err
	})
	run(func() error {
		rows, err := s.activity.Recent(ctx, s.cfg.RecentLimit)
		summary.RecentActivity = rows
		return err
	})

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	if s.cache != nil {
		ttl := time.Duration(s.cfg.CacheTTLSeconds) * time.Second
		if err := s.cache.SetJSON(ctx, redis.DashboardSummaryKey, summary, ttl); err != nil {
			s.logger.WithError(err).Warn("Dashboard cache write failed")
		}
	}

	return summary, nil
}

// Invalidate drops the cached summary. Write paths call it after mutations
// so the dashboard never shows stale counts longer than one request.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, redis.DashboardSummaryKey); err != nil {
		s.logger.WithError(err).Warn("Dashboard cache invalidation failed")
	}
}
