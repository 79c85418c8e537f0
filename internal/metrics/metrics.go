// Package metrics exposes Prometheus instrumentation for the HTTP surface,
// the database pool, and a few business counters.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	dbConnectionsOpen  prometheus.Gauge
	dbConnectionsIdle  prometheus.Gauge
	dbConnectionsInUse prometheus.Gauge

	AgreementsCreated prometheus.Counter
	PaymentsRecorded  prometheus.Counter
	SweepsRun         prometheus.Counter
}

// New registers and returns the service collectors.
func New() *Metrics {
	return &Metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed",
		}, []string{"method", "path", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "estate",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbConnectionsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "estate",
			Name:      "db_connections_open",
			Help:      "Number of open database connections",
		}),
		dbConnectionsIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "estate",
			Name:      "db_connections_idle",
			Help:      "Number of idle database connections",
		}),
		dbConnectionsInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "estate",
			Name:      "db_connections_in_use",
			Help:      "Number of database connections currently in use",
		}),
		AgreementsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "agreements_created_total",
			Help:      "Total rent agreements created",
		}),
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "payments_recorded_total",
			Help:      "Total payments recorded",
		}),
		SweepsRun: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "expiry_sweeps_total",
			Help:      "Total agreement expiry sweeps executed",
		}),
	}
}

// Middleware records request counts and latencies. The route template is used
// as the path label so IDs do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// WatchDBPool samples connection pool stats on a ticker until stop is closed.
func (m *Metrics) WatchDBPool(db *gorm.DB, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sqlDB, err := db.DB()
			if err != nil {
				continue
			}
			stats := sqlDB.Stats()
			m.dbConnectionsOpen.Set(float64(stats.OpenConnections))
			m.dbConnectionsIdle.Set(float64(stats.Idle))
			m.dbConnectionsInUse.Set(float64(stats.InUse))
		}
	}
}
