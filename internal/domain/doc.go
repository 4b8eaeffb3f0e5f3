// Package domain implements the climate risk scoring engine: pure functions
// that map environmental measurements for one location to per-hazard risk
// scores, and a weighted aggregator that combines them into one composite
// analysis.
//
// # Measurements and Defaults
//
// Inputs arrive as a sparse [Measurement]; upstream data sources are
// unreliable and the product's design choice is graceful degradation, so
// every missing field resolves to a documented default instead of failing:
//
//	precipitation      0 mm/h
//	elevation          200 m   (absent data must not manufacture flood risk)
//	temperature        20 °C
//	humidity           60 %
//	wind speed         2 m/s
//	wind direction     0°
//	cloud cover        30 %
//	PM2.5 / PM10       0 µg/m³
//	ozone              0 ppm
//	soil moisture      humidity × 0.8
//	drainage capacity  20 mm/h
//	facility counts    0
//
// [Measurement.Resolve] applies the defaults and returns [Conditions], the
// fully-resolved record every scorer consumes. Scorers are total for numeric
// input: no errors, no panics, no randomness.
//
// # Risk Levels
//
// Three threshold ladders coexist, preserved from the product's display
// contract rather than unified:
//
//	hazards:    ≥80 critical | ≥60 high | ≥40 medium | else low
//	composite:  ≥80 critical | ≥60 high | ≥40 medium | ≥20 low | else safe
//	air quality: <25 good | <50 moderate | ≥50 poor
//
// Every score is clamped to [0,100] before a ladder is applied.
//
// # Projections
//
// The +24h and +7d projections in [RiskAnalysis] are a fixed linear nudge
// (score + trend×10 per hazard, re-weighted), not a forecast model. Callers
// must treat them as a placeholder trend indicator.
package domain
