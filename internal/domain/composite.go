package domain

import (
	"math"
	"time"
)

// Category weights for the composite score. They must sum to exactly 1.0;
// the test suite enforces it.
const (
	weightFlood      = 0.25
	weightLandslide  = 0.20
	weightHeatwave   = 0.20
	weightAirQuality = 0.15
	weightSoil       = 0.10
	weightVegetation = 0.10
)

// HazardScores holds one score per hazard category as named fields, so
// aggregation is a pure function of the fields and cannot depend on any
// input ordering.
type HazardScores struct {
	Flood      HazardScore `json:"flood"`
	Landslide  HazardScore `json:"landslide"`
	Heatwave   HazardScore `json:"heatwave"`
	AirQuality HazardScore `json:"air_quality"`
	Soil       HazardScore `json:"soil"`
	Vegetation HazardScore `json:"vegetation"`
}

// RiskAnalysis aggregates the per-hazard scores for one location into one
// overall score, canned recommendations, and two linear-trend projections.
type RiskAnalysis struct {
	Geo             Geo          `json:"geo"`
	Grid            GridCell     `json:"grid"`
	OverallScore    int          `json:"overall_score"`
	OverallLevel    RiskLevel    `json:"overall_level"`
	Hazards         HazardScores `json:"hazards"`
	Flood           FloodDetail  `json:"flood_detail"`
	Recommendations []string     `json:"recommendations"`

	// Placeholder linear nudges, not forecasts: each hazard score is moved
	// by its fixed trend assumption and re-weighted.
	ProjectedScore24h int `json:"projected_score_24h"`
	ProjectedScore7d  int `json:"projected_score_7d"`

	AssessedAt time.Time `json:"assessed_at"`
}

// FloodDetail carries the flood model's secondary outputs on the analysis.
type FloodDetail struct {
	PredictedDepthM float64 `json:"predicted_depth_m"`
	TimeToFloodMin  int     `json:"time_to_flood_min"`
}

// Per-hazard trend assumptions, in ladder steps of 10 points. Most hazards
// are assumed flat or worsening over 24h; vegetation is assumed to recover
// over a week.
var (
	trend24h = map[Hazard]int{
		HazardFlood:    +1,
		HazardHeatwave: +1,
	}
	trend7d = map[Hazard]int{
		HazardVegetation: -1,
	}
)

// Aggregate combines per-hazard scores into a composite analysis.
func Aggregate(geo Geo, scores HazardScores, flood FloodDetail) RiskAnalysis {
	overall := weightedOverall(scores, func(s HazardScore) int { return s.Score })

	projected24 := weightedOverall(scores, func(s HazardScore) int {
		return projectScore(s.Score, trend24h[s.Hazard])
	})
	projected7d := weightedOverall(scores, func(s HazardScore) int {
		return projectScore(s.Score, trend7d[s.Hazard])
	})

	return RiskAnalysis{
		Geo:               geo,
		Grid:              ToGrid(geo.Lat, geo.Lon),
		OverallScore:      overall,
		OverallLevel:      compositeLevel(overall),
		Hazards:           scores,
		Flood:             flood,
		Recommendations:   recommendations(scores),
		ProjectedScore24h: projected24,
		ProjectedScore7d:  projected7d,
		AssessedAt:        clock.Now().UTC(),
	}
}

// Analyze resolves a measurement, runs every scorer, and aggregates. This is
// the engine's single entry point for callers holding raw inputs.
func Analyze(geo Geo, m Measurement) RiskAnalysis {
	c := m.Resolve()
	flood := ScoreFlood(c)

	return Aggregate(geo, HazardScores{
		Flood:      flood.HazardScore,
		Landslide:  ScoreLandslide(c),
		Heatwave:   ScoreHeatwave(c),
		AirQuality: ScoreAirQuality(c),
		Soil:       ScoreSoil(c),
		Vegetation: ScoreVegetation(c),
	}, FloodDetail{
		PredictedDepthM: flood.PredictedDepthM,
		TimeToFloodMin:  int(flood.TimeToFlood / time.Minute),
	})
}

func weightedOverall(s HazardScores, score func(HazardScore) int) int {
	raw := weightFlood*float64(score(s.Flood)) +
		weightLandslide*float64(score(s.Landslide)) +
		weightHeatwave*float64(score(s.Heatwave)) +
		weightAirQuality*float64(score(s.AirQuality)) +
		weightSoil*float64(score(s.Soil)) +
		weightVegetation*float64(score(s.Vegetation))
	return clampScore(int(math.Round(raw)))
}

// projectScore nudges a score by trend ladder steps, clamped to [0,100].
func projectScore(score, trend int) int {
	return clampScore(score + trend*10)
}

// Canned advice emitted when a hazard reaches high or critical.
var hazardAdvice = map[Hazard][]string{
	HazardFlood: {
		"Move valuables and electrical equipment above expected water level.",
		"Avoid underpasses, basements, and low-lying roads.",
	},
	HazardLandslide: {
		"Stay clear of steep slopes and retaining walls during heavy rain.",
		"Watch for tilting trees, new cracks, or sudden water flow changes.",
	},
	HazardHeatwave: {
		"Limit outdoor activity during midday hours and stay hydrated.",
		"Check on elderly neighbours and people living alone.",
	},
	HazardAirQuality: {
		"Limit outdoor activity and keep windows closed.",
		"Wear a particulate-filtering mask outdoors.",
	},
	HazardSoil: {
		"Stay clear of steep slopes and retaining walls during heavy rain.",
	},
	HazardVegetation: {
		"Limit outdoor activity during midday hours and stay hydrated.",
	},
}

// recommendations collects advice for every hazard at high or critical,
// deduplicated preserving first-seen order.
func recommendations(s HazardScores) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, hs := range []HazardScore{s.Flood, s.Landslide, s.Heatwave, s.AirQuality, s.Soil, s.Vegetation} {
		if !actionable(hs.Level) {
			continue
		}
		for _, advice := range hazardAdvice[hs.Hazard] {
			if _, ok := seen[advice]; ok {
				continue
			}
			seen[advice] = struct{}{}
			out = append(out, advice)
		}
	}
	return out
}

// actionable reports whether a level warrants recommendations. Air quality's
// "poor" is its ladder's top band and counts as actionable.
func actionable(level RiskLevel) bool {
	switch level {
	case LevelHigh, LevelCritical, LevelPoor:
		return true
	default:
		return false
	}
}
