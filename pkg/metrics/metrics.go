// Package metrics содержит prometheus-коллекторы сервиса
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов: HTTP, запросы к БД, пул соединений и фоновые задачи
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbPoolOpen      *prometheus.GaugeVec

	sweepTransitionsTotal *prometheus.CounterVec
	sweepFailuresTotal    *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbPoolOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		sweepTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_sweep_transitions_total",
			Help:        "Total number of booking status transitions applied by background sweeps",
			ConstLabels: constLabels,
		}, []string{"sweep"}),

		sweepFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_sweep_failures_total",
			Help:        "Total number of failed background sweep iterations",
			ConstLabels: constLabels,
		}, []string{"sweep"}),
	}
}

// ObserveHTTPRequest фиксирует завершённый HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauges пула соединений
func (m *Metrics) SetDBPoolStats(open, idle, inUse int) {
	m.dbPoolOpen.WithLabelValues("open").Set(float64(open))
	m.dbPoolOpen.WithLabelValues("idle").Set(float64(idle))
	m.dbPoolOpen.WithLabelValues("in_use").Set(float64(inUse))
}

// AddSweepTransitions фиксирует количество переходов статусов, выполненных фоновой задачей
func (m *Metrics) AddSweepTransitions(sweep string, count int64) {
	m.sweepTransitionsTotal.WithLabelValues(sweep).Add(float64(count))
}

// IncSweepFailure фиксирует неудачную итерацию фоновой задачи
func (m *Metrics) IncSweepFailure(sweep string) {
	m.sweepFailuresTotal.WithLabelValues(sweep).Inc()
}
