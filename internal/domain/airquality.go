package domain

import "fmt"

// ScoreAirQuality rates pollution from independent per-pollutant bands,
// summed and clamped. Unlike the other hazards it maps to the three-tier
// good/moderate/poor ladder.
func ScoreAirQuality(c Conditions) HazardScore {
	pm25 := pm25Factor(c.PM25)
	pm10 := pm10Factor(c.PM10)
	ozone := ozoneFactor(c.Ozone)

	score := clampScore(pm25 + pm10 + ozone)

	return HazardScore{
		Hazard: HazardAirQuality,
		Score:  score,
		Level:  airLevel(score),
		Factors: []string{
			fmt.Sprintf("PM2.5 %.1f µg/m³ (+%d)", c.PM25, pm25),
			fmt.Sprintf("PM10 %.1f µg/m³ (+%d)", c.PM10, pm10),
			fmt.Sprintf("ozone %.3f ppm (+%d)", c.Ozone, ozone),
		},
	}
}

// PM2.5 bands at 35/50/75 µg/m³.
func pm25Factor(ugm3 float64) int {
	switch {
	case ugm3 >= 75:
		return 40
	case ugm3 >= 50:
		return 25
	case ugm3 >= 35:
		return 15
	default:
		return 0
	}
}

// PM10 bands at 80/100/150 µg/m³.
func pm10Factor(ugm3 float64) int {
	switch {
	case ugm3 >= 150:
		return 30
	case ugm3 >= 100:
		return 20
	case ugm3 >= 80:
		return 10
	default:
		return 0
	}
}

// Ozone bands at 0.09/0.12 ppm.
func ozoneFactor(ppm float64) int {
	switch {
	case ppm >= 0.12:
		return 30
	case ppm >= 0.09:
		return 15
	default:
		return 0
	}
}
