package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Metrics holds the Prometheus collectors of the service. Each instance owns
// its registry so tests can build as many as they need.
type Metrics struct {
	Registry *prometheus.Registry

	RequestCount       *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	ErrorCount         *prometheus.CounterVec
	DashboardDuration  prometheus.Histogram
	ReportDuration     *prometheus.HistogramVec
	SchemaColumnsAdded prometheus.Counter
	SchemaUnavailable  *prometheus.CounterVec
	AlertRuns          *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hrdocs_http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hrdocs_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: latencyBuckets,
		}, []string{"route", "method"}),
		ErrorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hrdocs_http_errors_total",
			Help: "HTTP error responses by route, method and error code",
		}, []string{"route", "method", "code"}),
		DashboardDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hrdocs_dashboard_build_duration_seconds",
			Help:    "Duration of dashboard summary aggregation",
			Buckets: latencyBuckets,
		}),
		ReportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hrdocs_report_render_duration_seconds",
			Help:    "Duration of PDF report rendering by report kind",
			Buckets: latencyBuckets,
		}, []string{"kind"}),
		SchemaColumnsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "hrdocs_schema_guard_columns_added_total",
			Help: "Expiry columns provisioned by the schema guard",
		}),
		SchemaUnavailable: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hrdocs_schema_unavailable_total",
			Help: "Queries skipped because the backing expiry column is unavailable",
		}, []string{"category"}),
		AlertRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hrdocs_alert_runs_total",
			Help: "Daily alert job executions by outcome",
		}, []string{"outcome"}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestCount.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.ErrorCount.WithLabelValues(route, method, code).Inc()
}

// ObserveDashboard records the duration of a dashboard build.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveDashboard(start time.Time) {
	if m == nil {
		return
	}
	m.DashboardDuration.Observe(time.Since(start).Seconds())
}

// ObserveReport records the duration of a report render.
func (m *Metrics) ObserveReport(kind string, start time.Time) {
	if m == nil {
		return
	}
	m.ReportDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// AddSchemaColumns counts provisioned columns.
func (m *Metrics) AddSchemaColumns(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SchemaColumnsAdded.Add(float64(n))
}

// IncSchemaUnavailable counts a degraded category query.
func (m *Metrics) IncSchemaUnavailable(category string) {
	if m == nil {
		return
	}
	m.SchemaUnavailable.WithLabelValues(category).Inc()
}

// IncAlertRun counts an alert job execution.
func (m *Metrics) IncAlertRun(outcome string) {
	if m == nil {
		return
	}
	m.AlertRuns.WithLabelValues(outcome).Inc()
}
