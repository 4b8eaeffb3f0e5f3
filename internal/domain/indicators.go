package domain

import "fmt"

// Soil stability and vegetation coverage are 0-100 health indicators, not
// risk scores: higher is better. They fold into the composite analysis as
// risk = 100 - indicator.
const (
	soilStabilityPerStructure = 10
	vegetationPerFeature      = 5
)

// SoilStabilityIndicator derives slope stability from the count of nearby
// retaining structures.
func SoilStabilityIndicator(c Conditions) int {
	return indicatorFromCount(c.RetainingStructures, soilStabilityPerStructure)
}

// VegetationCoverageIndicator derives ground cover from the count of nearby
// vegetation features.
func VegetationCoverageIndicator(c Conditions) int {
	return indicatorFromCount(c.VegetationFeatures, vegetationPerFeature)
}

// ScoreSoil inverts the soil stability indicator into a hazard score.
func ScoreSoil(c Conditions) HazardScore {
	indicator := SoilStabilityIndicator(c)
	score := clampScore(100 - indicator)
	return HazardScore{
		Hazard: HazardSoil,
		Score:  score,
		Level:  hazardLevel(score),
		Factors: []string{
			fmt.Sprintf("%d retaining structures (stability %d)", c.RetainingStructures, indicator),
		},
	}
}

// ScoreVegetation inverts the vegetation coverage indicator into a hazard
// score.
func ScoreVegetation(c Conditions) HazardScore {
	indicator := VegetationCoverageIndicator(c)
	score := clampScore(100 - indicator)
	return HazardScore{
		Hazard: HazardVegetation,
		Score:  score,
		Level:  hazardLevel(score),
		Factors: []string{
			fmt.Sprintf("%d vegetation features (coverage %d)", c.VegetationFeatures, indicator),
		},
	}
}

func indicatorFromCount(count, perFeature int) int {
	if count <= 0 {
		return 0
	}
	indicator := count * perFeature
	if indicator > 100 {
		return 100
	}
	return indicator
}
