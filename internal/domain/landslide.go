package domain

import "fmt"

// Landslide scoring constants. The base is a susceptibility floor kept below
// the medium threshold so a site with no aggravating inputs stays low.
const (
	landslideBase            = 15
	landslidePerEvent        = 10
	landslideEventCap        = 40
	landslideHeavyRainBonus  = 30
	landslideHeavyRainMMPerH = 30.0
	landslideCheckDamCredit  = 20
)

// ScoreLandslide rates landslide risk from historical event density and
// current rainfall, discounted when check dams protect the slope.
func ScoreLandslide(c Conditions) HazardScore {
	score := landslideBase
	factors := []string{fmt.Sprintf("susceptibility base %d", landslideBase)}

	if c.HistoricalLandslides > 0 {
		contribution := c.HistoricalLandslides * landslidePerEvent
		if contribution > landslideEventCap {
			contribution = landslideEventCap
		}
		score += contribution
		factors = append(factors, fmt.Sprintf("%d historical events (+%d)", c.HistoricalLandslides, contribution))
	}

	if c.Precipitation > landslideHeavyRainMMPerH {
		score += landslideHeavyRainBonus
		factors = append(factors, fmt.Sprintf("heavy rainfall %.1f mm/h (+%d)", c.Precipitation, landslideHeavyRainBonus))
	}

	if c.CheckDams > 0 {
		score -= landslideCheckDamCredit
		factors = append(factors, fmt.Sprintf("%d check dams (-%d)", c.CheckDams, landslideCheckDamCredit))
	}

	score = clampScore(score)
	return HazardScore{
		Hazard:  HazardLandslide,
		Score:   score,
		Level:   hazardLevel(score),
		Factors: factors,
	}
}
