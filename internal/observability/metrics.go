package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment service.
type Metrics struct {
	AssessmentsTotal   prometheus.Counter
	AssessmentDuration prometheus.Histogram
	OverallScore       prometheus.Histogram

	// Upstream source metrics.
	SourceRequests *prometheus.CounterVec   // labels: source={weather,air,features}, outcome={success,error}
	SourceDuration *prometheus.HistogramVec // labels: source={weather,air,features}
	CacheLookups   *prometheus.CounterVec   // labels: source={weather,air,features}, result={hit,miss}

	// Kafka publishing metrics.
	AnalysesPublished prometheus.Counter
	PublishErrors     prometheus.Counter
	PublishEnabled    prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_risk",
			Name:      "assessments_total",
			Help:      "Total risk assessments performed.",
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_risk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete assessment including source fan-out.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		OverallScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_risk",
			Name:      "overall_score",
			Help:      "Distribution of composite risk scores served.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		SourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_risk",
			Name:      "source_requests_total",
			Help:      "Upstream data source requests by source and outcome.",
		}, []string{"source", "outcome"}),
		SourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate_risk",
			Name:      "source_duration_seconds",
			Help:      "Upstream request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_risk",
			Name:      "cache_lookups_total",
			Help:      "Source cache lookups by source and result.",
		}, []string{"source", "result"}),
		AnalysesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_risk",
			Name:      "analyses_published_total",
			Help:      "Total analyses written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_risk",
			Name:      "publish_errors_total",
			Help:      "Total failed writes to the sink topic.",
		}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_risk",
			Name:      "publish_enabled",
			Help:      "1 when Kafka publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.OverallScore,
		m.SourceRequests,
		m.SourceDuration,
		m.CacheLookups,
		m.AnalysesPublished,
		m.PublishErrors,
		m.PublishEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_risk", Name: "assessments_total"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_risk", Name: "assessment_duration_seconds"}),
		OverallScore:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_risk", Name: "overall_score"}),
		SourceRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_risk", Name: "source_requests_total"}, []string{"source", "outcome"}),
		SourceDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "climate_risk", Name: "source_duration_seconds"}, []string{"source"}),
		CacheLookups:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_risk", Name: "cache_lookups_total"}, []string{"source", "result"}),
		AnalysesPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_risk", Name: "analyses_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_risk", Name: "publish_errors_total"}),
		PublishEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate_risk", Name: "publish_enabled"}),
	}
}
