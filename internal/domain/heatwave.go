package domain

import (
	"fmt"
	"math"
)

const (
	shelterCreditPer = 2
	shelterCreditCap = 20
)

// ScoreHeatwave rates heat stress from absolute temperature bands plus the
// NWS heat index, discounted by nearby cooling shelters.
func ScoreHeatwave(c Conditions) HazardScore {
	tempFactor := heatTemperatureFactor(c.Temperature)
	hi := HeatIndex(c.Temperature, c.Humidity)
	hiFactor := heatIndexFactor(hi)

	shelterCredit := c.CoolingShelters * shelterCreditPer
	if shelterCredit > shelterCreditCap {
		shelterCredit = shelterCreditCap
	}

	score := clampScore(tempFactor + hiFactor - shelterCredit)

	factors := []string{
		fmt.Sprintf("temperature %.1f °C (+%d)", c.Temperature, tempFactor),
		fmt.Sprintf("heat index %.1f °C (+%d)", hi, hiFactor),
	}
	if shelterCredit > 0 {
		factors = append(factors, fmt.Sprintf("%d cooling shelters (-%d)", c.CoolingShelters, shelterCredit))
	}

	return HazardScore{
		Hazard:  HazardHeatwave,
		Score:   score,
		Level:   hazardLevel(score),
		Factors: factors,
	}
}

func heatTemperatureFactor(tempC float64) int {
	switch {
	case tempC >= 35:
		return 40
	case tempC >= 30:
		return 25
	case tempC >= 25:
		return 10
	default:
		return 0
	}
}

// heatIndexFactor bands the computed heat index along the NWS caution
// ladder: caution 27 °C, extreme caution 32 °C, danger 41 °C, extreme
// danger 54 °C.
func heatIndexFactor(hiC float64) int {
	switch {
	case hiC >= 54:
		return 40
	case hiC >= 41:
		return 30
	case hiC >= 32:
		return 20
	case hiC >= 27:
		return 10
	default:
		return 0
	}
}

// HeatIndex computes the NWS "feels-like" temperature in °C from air
// temperature (°C) and relative humidity (%). The Rothfusz regression is
// defined in Fahrenheit, so the computation converts in and back out.
func HeatIndex(tempC, humidity float64) float64 {
	return fahrenheitToCelsius(heatIndexF(celsiusToFahrenheit(tempC), humidity))
}

// heatIndexF is the NWS algorithm: the simple formula when its average with
// the temperature stays below 80 °F, otherwise the full Rothfusz regression
// with the low- and high-humidity adjustments.
func heatIndexF(tF, rh float64) float64 {
	simple := 0.5 * (tF + 61.0 + (tF-68.0)*1.2 + rh*0.094)
	if (simple+tF)/2 < 80 {
		return (simple + tF) / 2
	}

	hi := -42.379 +
		2.04901523*tF +
		10.14333127*rh -
		0.22475541*tF*rh -
		0.00683783*tF*tF -
		0.05481717*rh*rh +
		0.00122874*tF*tF*rh +
		0.00085282*tF*rh*rh -
		0.00000199*tF*tF*rh*rh

	switch {
	case rh < 13 && tF >= 80 && tF <= 112:
		hi -= ((13 - rh) / 4) * math.Sqrt((17-math.Abs(tF-95))/17)
	case rh > 85 && tF >= 80 && tF <= 87:
		hi += ((rh - 85) / 10) * ((87 - tF) / 2)
	}
	return hi
}

func celsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }
func fahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }
