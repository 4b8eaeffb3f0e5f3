package assess

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

// Publisher emits completed analyses to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, analysis domain.RiskAnalysis) error
}

// Assessor fans out to the upstream data sources, merges whatever they
// return, and runs the scoring engine. A failed source is absorbed: its
// fields stay unset and the engine substitutes documented defaults, so one
// dead upstream degrades the answer instead of the service.
type Assessor struct {
	weather  domain.WeatherSource
	air      domain.AirSource
	features domain.FeatureSource

	publisher Publisher // nil when Kafka publishing is disabled

	logger  *slog.Logger
	metrics *observability.Metrics

	ready atomic.Bool
}

// New creates an assessor. Any source may be nil; its fragment is skipped.
func New(weather domain.WeatherSource, air domain.AirSource, features domain.FeatureSource,
	publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Assessor {
	return &Assessor{
		weather:   weather,
		air:       air,
		features:  features,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Assess produces a risk analysis for a coordinate. The only error condition
// is context cancellation; source failures degrade to defaults.
func (a *Assessor) Assess(ctx context.Context, lat, lon float64) (domain.RiskAnalysis, error) {
	start := time.Now()

	var (
		mu        sync.Mutex
		fragments [3]domain.Measurement
		wg        sync.WaitGroup
	)

	setFragment := func(i int, m domain.Measurement) {
		mu.Lock()
		fragments[i] = m
		mu.Unlock()
	}

	if a.weather != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs, err := fetch(ctx, a, "weather", func(ctx context.Context) (domain.WeatherObservation, error) {
				return a.weather.Current(ctx, lat, lon)
			})
			if err != nil {
				return
			}
			setFragment(0, obs.Measurement())
		}()
	}

	if a.air != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs, err := fetch(ctx, a, "air", func(ctx context.Context) (domain.AirObservation, error) {
				return a.air.Latest(ctx, lat, lon)
			})
			if err != nil {
				return
			}
			setFragment(1, obs.Measurement())
		}()
	}

	if a.features != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			survey, err := fetch(ctx, a, "features", func(ctx context.Context) (domain.SiteSurvey, error) {
				return a.features.Survey(ctx, lat, lon)
			})
			if err != nil {
				return
			}
			setFragment(2, survey.Measurement())
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.RiskAnalysis{}, err
	}

	// Merge in fixed source order so concurrent completion order cannot
	// change the result.
	merged := fragments[0].Merge(fragments[1]).Merge(fragments[2])
	analysis := domain.Analyze(domain.Geo{Lat: lat, Lon: lon}, merged)

	a.metrics.AssessmentsTotal.Inc()
	a.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	a.metrics.OverallScore.Observe(float64(analysis.OverallScore))
	a.ready.Store(true)

	a.publish(ctx, analysis)

	return analysis, nil
}

// fetch runs one source call with per-source metrics and absorb-on-error
// logging.
func fetch[T any](ctx context.Context, a *Assessor, source string, call func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	v, err := call(ctx)
	a.metrics.SourceDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())

	if err != nil {
		a.metrics.SourceRequests.WithLabelValues(source, "error").Inc()
		a.logger.Warn("source unavailable, using defaults", "source", source, "error", err)
		return v, err
	}
	a.metrics.SourceRequests.WithLabelValues(source, "success").Inc()
	return v, nil
}

// publish sends the analysis downstream, best effort. A broker outage must
// not fail the assessment that produced the analysis.
func (a *Assessor) publish(ctx context.Context, analysis domain.RiskAnalysis) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(ctx, analysis); err != nil {
		a.metrics.PublishErrors.Inc()
		a.logger.Warn("failed to publish analysis", "error", err)
		return
	}
	a.metrics.AnalysesPublished.Inc()
}

// CheckReadiness reports nil once at least one assessment has completed.
func (a *Assessor) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errNotReady
	}
	return nil
}

var errNotReady = notReadyError{}

type notReadyError struct{}

func (notReadyError) Error() string { return "no assessment completed yet" }
