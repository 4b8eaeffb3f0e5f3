package domain

import (
	"fmt"
	"math"
	"time"
)

// Flood sub-factor weights. The precipitation band dominates; drainage is a
// modifier. Weights sum to 1.0.
const (
	floodWeightPrecip     = 0.40
	floodWeightElevation  = 0.25
	floodWeightSaturation = 0.20
	floodWeightDrainage   = 0.15

	// Predicted depth is capped at 3 m; beyond that the model has no signal.
	maxFloodDepthM = 3.0
)

// FloodAssessment extends the hazard score with the model's secondary
// outputs: a rough inundation depth and a time-to-flood estimate. The
// estimate is a lookup by risk level, not a hydrological simulation.
type FloodAssessment struct {
	HazardScore
	PredictedDepthM float64       `json:"predicted_depth_m"`
	TimeToFlood     time.Duration `json:"time_to_flood_ns"`
}

// ScoreFlood rates flood risk as a weighted sum of four banded sub-factors:
// rainfall intensity, inverse elevation, soil saturation, and rainfall
// versus drainage capacity.
func ScoreFlood(c Conditions) FloodAssessment {
	precip := floodPrecipFactor(c.Precipitation)
	elev := floodElevationFactor(c.Elevation)
	sat := floodSaturationFactor(c.SoilMoisture)
	drain := floodDrainageFactor(c.Precipitation, c.DrainageCapacity)

	raw := floodWeightPrecip*precip +
		floodWeightElevation*elev +
		floodWeightSaturation*sat +
		floodWeightDrainage*drain
	score := clampScore(int(math.Round(raw)))
	level := hazardLevel(score)

	return FloodAssessment{
		HazardScore: HazardScore{
			Hazard: HazardFlood,
			Score:  score,
			Level:  level,
			Factors: []string{
				fmt.Sprintf("precipitation %.1f mm/h (factor %.0f)", c.Precipitation, precip),
				fmt.Sprintf("elevation %.0f m (factor %.0f)", c.Elevation, elev),
				fmt.Sprintf("soil saturation %.0f%% (factor %.0f)", c.SoilMoisture, sat),
				fmt.Sprintf("drainage capacity %.0f mm/h (factor %.0f)", c.DrainageCapacity, drain),
			},
		},
		PredictedDepthM: predictFloodDepth(c),
		TimeToFlood:     timeToFlood(level),
	}
}

// floodPrecipFactor bands rainfall intensity: linear up to 25 at 5 mm/h,
// then fixed steps at 15/30/50/80 mm/h.
func floodPrecipFactor(mmPerHour float64) float64 {
	switch {
	case mmPerHour <= 0:
		return 0
	case mmPerHour < 5:
		return mmPerHour / 5 * 25
	case mmPerHour < 15:
		return 40
	case mmPerHour < 30:
		return 55
	case mmPerHour < 50:
		return 70
	case mmPerHour < 80:
		return 85
	default:
		return 100
	}
}

// floodElevationFactor is the inverse of elevation: maximal at or below 5 m,
// decaying through fixed bands to zero above 150 m.
func floodElevationFactor(meters float64) float64 {
	switch {
	case meters <= 5:
		return 100
	case meters <= 10:
		return 90
	case meters <= 20:
		return 75
	case meters <= 50:
		return 55
	case meters <= 100:
		return 35
	case meters <= 150:
		return 15
	default:
		return 0
	}
}

// floodSaturationFactor bands resolved soil moisture.
func floodSaturationFactor(soilMoisture float64) float64 {
	switch {
	case soilMoisture >= 90:
		return 100
	case soilMoisture >= 75:
		return 80
	case soilMoisture >= 60:
		return 60
	case soilMoisture >= 45:
		return 40
	case soilMoisture >= 30:
		return 20
	default:
		return 0
	}
}

// floodDrainageFactor compares rainfall against drainage capacity: 100 once
// rainfall exceeds twice capacity, scaling linearly below.
func floodDrainageFactor(mmPerHour, capacity float64) float64 {
	if capacity <= 0 {
		capacity = DefaultDrainageCapacity
	}
	ratio := mmPerHour / (2 * capacity)
	if ratio >= 1 {
		return 100
	}
	if ratio <= 0 {
		return 0
	}
	return ratio * 100
}

// predictFloodDepth estimates standing water depth from rainfall exceeding
// drainage capacity, amplified by low elevation and saturated soil.
func predictFloodDepth(c Conditions) float64 {
	capacity := c.DrainageCapacity
	if capacity <= 0 {
		capacity = DefaultDrainageCapacity
	}
	excess := math.Max(0, c.Precipitation-capacity)
	if excess == 0 {
		return 0
	}
	depth := (excess / 100) * (1 + (100-c.Elevation)/100) * (c.SoilMoisture / 50)
	return math.Max(0, math.Min(maxFloodDepthM, depth))
}

// timeToFlood is a fixed lookup by risk level.
func timeToFlood(level RiskLevel) time.Duration {
	switch level {
	case LevelCritical:
		return 15 * time.Minute
	case LevelHigh:
		return 30 * time.Minute
	case LevelMedium:
		return 60 * time.Minute
	default:
		return 120 * time.Minute
	}
}
