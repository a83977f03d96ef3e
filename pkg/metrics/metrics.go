// Package metrics Prometheus-метрики сервиса
//
// Все методы безопасны для nil-получателя: если метрики выключены в конфиге,
// в слои передается nil и вызовы становятся no-op.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	quotes              *prometheus.CounterVec
	availabilityChecks  *prometheus.CounterVec
	rulesApplied        *prometheus.CounterVec
	rulesSkipped        prometheus.Counter
	lateArrivalsCancels prometheus.Counter

	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "camp_quotes_total",
			Help:        "Price quotes by result",
			ConstLabels: labels,
		}, []string{"result"}),
		availabilityChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "camp_availability_checks_total",
			Help:        "Availability checks by verdict",
			ConstLabels: labels,
		}, []string{"verdict"}),
		rulesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "camp_pricing_rules_applied_total",
			Help:        "Pricing rule applications by rule kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		rulesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "camp_pricing_rules_skipped_total",
			Help:        "Malformed pricing rules skipped while loading",
			ConstLabels: labels,
		}),
		lateArrivalsCancels: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "camp_late_arrivals_cancelled_total",
			Help:        "Reservations cancelled because of late arrival",
			ConstLabels: labels,
		}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		dbIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.quotes,
		m.availabilityChecks,
		m.rulesApplied,
		m.rulesSkipped,
		m.lateArrivalsCancels,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
	)

	return m
}

// ObserveHTTP фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncQuote result: quoted, rejected, error
func (m *Metrics) IncQuote(result string) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(result).Inc()
}

func (m *Metrics) IncAvailability(verdict string) {
	if m == nil {
		return
	}
	m.availabilityChecks.WithLabelValues(verdict).Inc()
}

func (m *Metrics) IncRuleApplied(kind string) {
	if m == nil {
		return
	}
	m.rulesApplied.WithLabelValues(kind).Inc()
}

func (m *Metrics) AddRulesSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rulesSkipped.Add(float64(n))
}

func (m *Metrics) AddLateArrivalsCancelled(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.lateArrivalsCancels.Add(float64(n))
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUse.Set(float64(stats.InUse))
	m.dbIdle.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}
