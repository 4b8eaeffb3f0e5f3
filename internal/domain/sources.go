package domain

import "context"

// WeatherObservation is a current-conditions reading from a weather source.
type WeatherObservation struct {
	Temperature   float64 // °C
	Humidity      float64 // %
	WindSpeed     float64 // m/s
	WindDirection float64 // degrees
	CloudCover    float64 // %
	Precipitation float64 // mm/h, next-hour amount
}

// AirObservation is the latest pollutant reading near a point.
type AirObservation struct {
	PM25  float64 // µg/m³
	PM10  float64 // µg/m³
	Ozone float64 // ppm
}

// SiteSurvey counts protective and vulnerable geographic features around a
// point. Elevation is nil when the terrain source had no coverage.
type SiteSurvey struct {
	Elevation            *float64 `json:"elevation,omitempty"`
	CoolingShelters      int      `json:"cooling_shelters"`
	CheckDams            int      `json:"check_dams"`
	VegetationFeatures   int      `json:"vegetation_features"`
	RetainingStructures  int      `json:"retaining_structures"`
	HistoricalLandslides int      `json:"historical_landslides"`
}

// WeatherSource provides current weather conditions for a coordinate.
type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) (WeatherObservation, error)
}

// AirSource provides the latest air quality readings near a coordinate.
type AirSource interface {
	Latest(ctx context.Context, lat, lon float64) (AirObservation, error)
}

// FeatureSource surveys geographic features around a coordinate.
type FeatureSource interface {
	Survey(ctx context.Context, lat, lon float64) (SiteSurvey, error)
}

// Measurement converts the observation into a sparse measurement fragment.
func (o WeatherObservation) Measurement() Measurement {
	return Measurement{
		Temperature:   Float(o.Temperature),
		Humidity:      Float(o.Humidity),
		WindSpeed:     Float(o.WindSpeed),
		WindDirection: Float(o.WindDirection),
		CloudCover:    Float(o.CloudCover),
		Precipitation: Float(o.Precipitation),
	}
}

// Measurement converts the observation into a sparse measurement fragment.
func (o AirObservation) Measurement() Measurement {
	return Measurement{
		PM25:  Float(o.PM25),
		PM10:  Float(o.PM10),
		Ozone: Float(o.Ozone),
	}
}

// Measurement converts the survey into a sparse measurement fragment.
func (s SiteSurvey) Measurement() Measurement {
	m := Measurement{
		CoolingShelters:      Int(s.CoolingShelters),
		CheckDams:            Int(s.CheckDams),
		VegetationFeatures:   Int(s.VegetationFeatures),
		RetainingStructures:  Int(s.RetainingStructures),
		HistoricalLandslides: Int(s.HistoricalLandslides),
	}
	if s.Elevation != nil {
		m.Elevation = Float(*s.Elevation)
	}
	return m
}
