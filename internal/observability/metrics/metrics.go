package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

// ServerMetrics collects HTTP server and discovery pipeline metrics in a
// dedicated registry. It implements ports.RunObserver for the pipeline side.
type ServerMetrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	runsStartedTotal        prometheus.Counter
	runsCompletedTotal      *prometheus.CounterVec
	runDocumentsTotal       prometheus.Gauge
	documentsClassified     *prometheus.CounterVec
	classificationFallbacks prometheus.Counter
	classificationDuration  prometheus.Histogram
	reportExportsTotal      *prometheus.CounterVec
	ingestFilesTotal        *prometheus.CounterVec
}

func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eda",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eda",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "eda",
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)

	runsStartedTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "eda",
			Subsystem:   "discovery",
			Name:        "runs_started_total",
			Help:        "Total discovery runs admitted by the single-flight guard.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	runsCompletedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eda",
			Subsystem: "discovery",
			Name:      "runs_completed_total",
			Help:      "Total discovery runs by terminal status.",
		},
		[]string{"service", "status"},
	)
	runDocumentsTotal := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "eda",
			Subsystem:   "discovery",
			Name:        "run_documents_total",
			Help:        "Document count captured at the start of the current run.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	documentsClassified := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eda",
			Subsystem: "discovery",
			Name:      "documents_classified_total",
			Help:      "Total classified documents by decision.",
		},
		[]string{"service", "decision"},
	)
	classificationFallbacks := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "eda",
			Subsystem:   "discovery",
			Name:        "classification_fallbacks_total",
			Help:        "Total classifier failures converted to fallback results.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	classificationDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "eda",
			Subsystem:   "discovery",
			Name:        "classification_duration_seconds",
			Help:        "Per-document classification duration in seconds.",
			Buckets:     []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 120},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	reportExportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eda",
			Subsystem: "report",
			Name:      "exports_total",
			Help:      "Total report exports by format.",
		},
		[]string{"service", "format"},
	)
	ingestFilesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eda",
			Subsystem: "ingest",
			Name:      "files_total",
			Help:      "Total ingested files by outcome.",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		runsStartedTotal,
		runsCompletedTotal,
		runDocumentsTotal,
		documentsClassified,
		classificationFallbacks,
		classificationDuration,
		reportExportsTotal,
		ingestFilesTotal,
	)

	return &ServerMetrics{
		registry:                registry,
		service:                 service,
		requestTotal:            requestTotal,
		requestDuration:         requestDuration,
		requestInFlight:         requestInFlight,
		runsStartedTotal:        runsStartedTotal,
		runsCompletedTotal:      runsCompletedTotal,
		runDocumentsTotal:       runDocumentsTotal,
		documentsClassified:     documentsClassified,
		classificationFallbacks: classificationFallbacks,
		classificationDuration:  classificationDuration,
		reportExportsTotal:      reportExportsTotal,
		ingestFilesTotal:        ingestFilesTotal,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *ServerMetrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.requestTotal.WithLabelValues(m.service, method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

func (m *ServerMetrics) RequestStarted()  { m.requestInFlight.Inc() }
func (m *ServerMetrics) RequestFinished() { m.requestInFlight.Dec() }

// RunStarted implements ports.RunObserver.
func (m *ServerMetrics) RunStarted(total int) {
	m.runsStartedTotal.Inc()
	m.runDocumentsTotal.Set(float64(total))
}

// DocumentClassified implements ports.RunObserver.
func (m *ServerMetrics) DocumentClassified(decision domain.RelevanceDecision, fallback bool, seconds float64) {
	m.documentsClassified.WithLabelValues(m.service, string(decision)).Inc()
	m.classificationDuration.Observe(seconds)
	if fallback {
		m.classificationFallbacks.Inc()
	}
}

// RunCompleted implements ports.RunObserver.
func (m *ServerMetrics) RunCompleted(status domain.RunStatus) {
	m.runsCompletedTotal.WithLabelValues(m.service, string(status)).Inc()
}

func (m *ServerMetrics) ReportExported(format string) {
	m.reportExportsTotal.WithLabelValues(m.service, format).Inc()
}

func (m *ServerMetrics) IngestObserved(success, failed int) {
	m.ingestFilesTotal.WithLabelValues(m.service, "success").Add(float64(success))
	m.ingestFilesTotal.WithLabelValues(m.service, "failed").Add(float64(failed))
}
