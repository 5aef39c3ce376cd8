package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the assessor's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Assessments        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	InferenceErrors    *prometheus.CounterVec
	InferenceDuration  *prometheus.HistogramVec
	MetricsCacheHits   *prometheus.CounterVec
}

// NewMetrics registers all collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardio",
			Name:      "assessments_total",
			Help:      "Completed assessments by risk tier.",
		}, []string{"tier"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardio",
			Name:      "validation_failures_total",
			Help:      "Rejected fields by field name and reason.",
		}, []string{"field", "reason"}),
		InferenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardio",
			Name:      "inference_errors_total",
			Help:      "Failed calls to the inference service.",
		}, []string{"endpoint"}),
		InferenceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cardio",
			Name:      "inference_duration_seconds",
			Help:      "Latency of calls to the inference service.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		MetricsCacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardio",
			Name:      "model_metrics_cache_total",
			Help:      "Model metrics cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.Assessments,
		m.ValidationFailures,
		m.InferenceErrors,
		m.InferenceDuration,
		m.MetricsCacheHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
