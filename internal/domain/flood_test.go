package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(m Measurement) Conditions { return m.Resolve() }

func TestScoreFlood_Scenarios(t *testing.T) {
	t.Run("dry high ground scores near zero", func(t *testing.T) {
		c := resolved(Measurement{
			Precipitation: Float(0),
			Elevation:     Float(200),
		})
		result := ScoreFlood(c)

		assert.LessOrEqual(t, result.Score, 10)
		assert.Equal(t, LevelLow, result.Level)
		assert.Zero(t, result.PredictedDepthM)
		assert.Equal(t, 120*time.Minute, result.TimeToFlood)
	})

	t.Run("extreme rain on low ground is critical", func(t *testing.T) {
		c := resolved(Measurement{
			Precipitation: Float(90),
			Elevation:     Float(3),
			Humidity:      Float(80),
		})
		result := ScoreFlood(c)

		assert.GreaterOrEqual(t, result.Score, 85)
		assert.Equal(t, LevelCritical, result.Level)
		assert.Equal(t, 15*time.Minute, result.TimeToFlood)
		assert.Greater(t, result.PredictedDepthM, 0.0)
		assert.LessOrEqual(t, result.PredictedDepthM, 3.0)
		require.Len(t, result.Factors, 4)
		assert.Contains(t, result.Factors[0], "factor 100") // precipitation maxed
		assert.Contains(t, result.Factors[1], "factor 100") // elevation maxed
	})
}

func TestFloodPrecipFactor(t *testing.T) {
	tests := []struct {
		name     string
		mmPerH   float64
		expected float64
	}{
		{"no rain", 0, 0},
		{"light rain midpoint", 2.5, 12.5},
		{"first band", 6, 40},
		{"moderate band", 20, 55},
		{"heavy band", 40, 70},
		{"intense band", 60, 85},
		{"extreme", 80, 100},
		{"beyond extreme", 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, floodPrecipFactor(tt.mmPerH), 0.001)
		})
	}
}

func TestFloodElevationFactor(t *testing.T) {
	tests := []struct {
		meters   float64
		expected float64
	}{
		{0, 100},
		{5, 100},
		{8, 90},
		{15, 75},
		{40, 55},
		{90, 35},
		{140, 15},
		{200, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, floodElevationFactor(tt.meters), 0.001, "elevation %.0f", tt.meters)
	}
}

func TestFloodDrainageFactor(t *testing.T) {
	t.Run("rain beyond twice capacity saturates", func(t *testing.T) {
		assert.Equal(t, 100.0, floodDrainageFactor(90, 20))
	})

	t.Run("scales linearly below twice capacity", func(t *testing.T) {
		assert.InDelta(t, 50.0, floodDrainageFactor(20, 20), 0.001)
	})

	t.Run("no rain means no drainage pressure", func(t *testing.T) {
		assert.Equal(t, 0.0, floodDrainageFactor(0, 20))
	})

	t.Run("zero capacity falls back to default", func(t *testing.T) {
		assert.Equal(t, floodDrainageFactor(30, DefaultDrainageCapacity), floodDrainageFactor(30, 0))
	})
}

func TestScoreFlood_MonotonicInPrecipitation(t *testing.T) {
	prev := -1
	for p := 0.0; p <= 120; p += 2.5 {
		c := resolved(Measurement{Precipitation: Float(p), Elevation: Float(30)})
		score := ScoreFlood(c).Score
		assert.GreaterOrEqual(t, score, prev, "score dropped at precipitation %.1f", p)
		prev = score
	}
}

func TestScoreFlood_ClampedAndIdempotent(t *testing.T) {
	inputs := []Measurement{
		{},
		{Precipitation: Float(500), Elevation: Float(-10), Humidity: Float(100), DrainageCapacity: Float(1)},
		{Precipitation: Float(-5), Elevation: Float(9000)},
	}

	for _, m := range inputs {
		c := resolved(m)
		first := ScoreFlood(c)
		second := ScoreFlood(c)

		assert.GreaterOrEqual(t, first.Score, 0)
		assert.LessOrEqual(t, first.Score, 100)
		assert.Equal(t, first, second, "scoring must be deterministic")
	}
}

func TestPredictFloodDepth(t *testing.T) {
	t.Run("no excess rain means no depth", func(t *testing.T) {
		c := resolved(Measurement{Precipitation: Float(10), Elevation: Float(3)})
		assert.Zero(t, predictFloodDepth(c))
	})

	t.Run("matches the closed form", func(t *testing.T) {
		c := resolved(Measurement{
			Precipitation: Float(90),
			Elevation:     Float(3),
			SoilMoisture:  Float(64),
		})
		// excess 70: (70/100) * (1 + 97/100) * (64/50)
		assert.InDelta(t, 0.70*1.97*1.28, predictFloodDepth(c), 0.0001)
	})

	t.Run("capped at three metres", func(t *testing.T) {
		c := resolved(Measurement{
			Precipitation: Float(500),
			Elevation:     Float(0),
			SoilMoisture:  Float(100),
		})
		assert.Equal(t, 3.0, predictFloodDepth(c))
	})
}
