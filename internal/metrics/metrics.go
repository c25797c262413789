package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics provides observability for identifier checks, document validation,
// batch reports and the HTTP layer.
type Metrics struct {
	IdentifierChecks    *prometheus.CounterVec
	KeyOperations       *prometheus.CounterVec
	DocumentValidations *prometheus.CounterVec
	DocumentDuration    prometheus.Histogram
	BatchRows           *prometheus.CounterVec
	BatchDuration       prometheus.Histogram
	ReportsArchived     prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// New creates a Metrics instance registered on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		IdentifierChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brfiscal_identifier_checks_total",
			Help: "Identifier checks by kind and outcome",
		}, []string{"kind", "result"}),
		KeyOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brfiscal_access_key_operations_total",
			Help: "Access key parse/build/partition operations by outcome",
		}, []string{"op", "result"}),
		DocumentValidations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brfiscal_document_validations_total",
			Help: "Documents validated by overall status",
		}, []string{"status"}),
		DocumentDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "brfiscal_document_validation_duration_seconds",
			Help:    "Duration of running the rule engine on one document",
			Buckets: latencyBuckets,
		}),
		BatchRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brfiscal_batch_rows_total",
			Help: "Batch rows processed by outcome",
		}, []string{"result"}),
		BatchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "brfiscal_batch_duration_seconds",
			Help:    "Duration of validating a batch and rendering its report",
			Buckets: latencyBuckets,
		}),
		ReportsArchived: f.NewCounter(prometheus.CounterOpts{
			Name: "brfiscal_reports_archived_total",
			Help: "Batch reports uploaded to object storage",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brfiscal_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "brfiscal_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: latencyBuckets,
		}, []string{"method", "route"}),
	}
}

func outcome(ok bool) string {
	if ok {
		return "valid"
	}
	return "invalid"
}

// ObserveIdentifier records one identifier check.
func (m *Metrics) ObserveIdentifier(kind string, valid bool) {
	m.IdentifierChecks.WithLabelValues(kind, outcome(valid)).Inc()
}

// ObserveKeyOperation records one access-key operation.
func (m *Metrics) ObserveKeyOperation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.KeyOperations.WithLabelValues(op, result).Inc()
}

// ObserveDocument records a document validation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveDocument(status string, start time.Time) {
	m.DocumentValidations.WithLabelValues(status).Inc()
	m.DocumentDuration.Observe(time.Since(start).Seconds())
}

// ObserveBatch records the row outcomes and duration of a batch.
func (m *Metrics) ObserveBatch(valid, invalid int, start time.Time) {
	m.BatchRows.WithLabelValues("valid").Add(float64(valid))
	m.BatchRows.WithLabelValues("invalid").Add(float64(invalid))
	m.BatchDuration.Observe(time.Since(start).Seconds())
}

// IncrementReportsArchived records a successful report upload.
func (m *Metrics) IncrementReportsArchived() {
	m.ReportsArchived.Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
