package domain

// Hazard names one risk category scored by the engine.
type Hazard string

const (
	HazardFlood      Hazard = "flood"
	HazardLandslide  Hazard = "landslide"
	HazardHeatwave   Hazard = "heatwave"
	HazardAirQuality Hazard = "air_quality"
	HazardSoil       Hazard = "soil"
	HazardVegetation Hazard = "vegetation"
)

// RiskLevel is a discrete severity label derived from a numeric score.
type RiskLevel string

const (
	LevelSafe     RiskLevel = "safe"
	LevelLow      RiskLevel = "low"
	LevelMedium   RiskLevel = "medium"
	LevelHigh     RiskLevel = "high"
	LevelCritical RiskLevel = "critical"

	// Air quality uses its own three-tier ladder.
	LevelGood     RiskLevel = "good"
	LevelModerate RiskLevel = "moderate"
	LevelPoor     RiskLevel = "poor"
)

// HazardScore is the output of one scoring function: a clamped 0-100 score,
// the level derived from it, and the contributing factors in scoring order.
type HazardScore struct {
	Hazard  Hazard    `json:"hazard"`
	Score   int       `json:"score"`
	Level   RiskLevel `json:"level"`
	Factors []string  `json:"factors,omitempty"`
}

// hazardLevel applies the four-tier ladder used by individual hazards.
func hazardLevel(score int) RiskLevel {
	switch {
	case score >= 80:
		return LevelCritical
	case score >= 60:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// compositeLevel applies the five-tier ladder used by the overall score.
// It has one more band than the hazard ladder; the asymmetry is intentional.
func compositeLevel(score int) RiskLevel {
	switch {
	case score >= 80:
		return LevelCritical
	case score >= 60:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	case score >= 20:
		return LevelLow
	default:
		return LevelSafe
	}
}

// airLevel applies the three-tier air quality ladder.
func airLevel(score int) RiskLevel {
	switch {
	case score < 25:
		return LevelGood
	case score < 50:
		return LevelModerate
	default:
		return LevelPoor
	}
}

// clampScore bounds a raw score to [0,100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
