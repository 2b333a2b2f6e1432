package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sqlRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sql_repository",
		Name:      "operations_total",
		Help:      "Count of store operations.",
	}, []string{"operation", "dialect", "status"})
	sqlRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sql_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of store operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation", "dialect", "status"})
)

// SQLRepository tracks metrics for store operations.
type SQLRepository struct {
	dialect string
}

// NewSQLRepository creates a SQLRepository metrics collector for a database dialect.
func NewSQLRepository(dialect string) *SQLRepository {
	if dialect == "" {
		dialect = "unknown"
	}
	return &SQLRepository{dialect: dialect}
}

// Observe records duration and status of a store operation.
func (m SQLRepository) Observe(operation string, err error, started time.Time) {
	s := status(err)
	sqlRepositoryRequestsTotal.WithLabelValues(operation, m.dialect, s).Inc()
	sqlRepositoryRequestDuration.WithLabelValues(operation, m.dialect, s).Observe(time.Since(started).Seconds())
}
