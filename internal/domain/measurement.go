package domain

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Measurement is the sparse input record for one location at one time.
// Nil fields mean the upstream source had no reading; Resolve fills them
// with the defaults documented in the package comment. Callers never need
// to pre-validate — the engine applies defaults internally.
type Measurement struct {
	Precipitation    *float64 `json:"precipitation,omitempty"`     // mm/h
	Elevation        *float64 `json:"elevation,omitempty"`         // m above sea level
	Temperature      *float64 `json:"temperature,omitempty"`       // °C
	Humidity         *float64 `json:"humidity,omitempty"`          // relative, %
	WindSpeed        *float64 `json:"wind_speed,omitempty"`        // m/s
	WindDirection    *float64 `json:"wind_direction,omitempty"`    // degrees
	CloudCover       *float64 `json:"cloud_cover,omitempty"`       // %
	PM25             *float64 `json:"pm25,omitempty"`              // µg/m³
	PM10             *float64 `json:"pm10,omitempty"`              // µg/m³
	Ozone            *float64 `json:"ozone,omitempty"`             // ppm
	SoilMoisture     *float64 `json:"soil_moisture,omitempty"`     // %
	DrainageCapacity *float64 `json:"drainage_capacity,omitempty"` // mm/h

	CoolingShelters      *int `json:"cooling_shelters,omitempty"`
	CheckDams            *int `json:"check_dams,omitempty"`
	VegetationFeatures   *int `json:"vegetation_features,omitempty"`
	RetainingStructures  *int `json:"retaining_structures,omitempty"`
	HistoricalLandslides *int `json:"historical_landslides,omitempty"`
}

// Default values applied by Resolve. Missing data degrades toward
// "no signal", never toward alarm.
const (
	DefaultPrecipitation    = 0.0
	DefaultElevation        = 200.0
	DefaultTemperature      = 20.0
	DefaultHumidity         = 60.0
	DefaultWindSpeed        = 2.0
	DefaultWindDirection    = 0.0
	DefaultCloudCover       = 30.0
	DefaultDrainageCapacity = 20.0

	// Soil moisture without an explicit reading is approximated from
	// relative humidity.
	soilMoistureHumidityRatio = 0.8
)

// Conditions is a fully-resolved measurement: every field carries either an
// observed reading or its documented default. All scorers consume Conditions.
type Conditions struct {
	Precipitation    float64
	Elevation        float64
	Temperature      float64
	Humidity         float64
	WindSpeed        float64
	WindDirection    float64
	CloudCover       float64
	PM25             float64
	PM10             float64
	Ozone            float64
	SoilMoisture     float64
	DrainageCapacity float64

	CoolingShelters      int
	CheckDams            int
	VegetationFeatures   int
	RetainingStructures  int
	HistoricalLandslides int
}

// Resolve applies defaults to every missing field and returns the resolved
// conditions. It never mutates the receiver.
func (m Measurement) Resolve() Conditions {
	humidity := floatOr(m.Humidity, DefaultHumidity)

	return Conditions{
		Precipitation:    floatOr(m.Precipitation, DefaultPrecipitation),
		Elevation:        floatOr(m.Elevation, DefaultElevation),
		Temperature:      floatOr(m.Temperature, DefaultTemperature),
		Humidity:         humidity,
		WindSpeed:        floatOr(m.WindSpeed, DefaultWindSpeed),
		WindDirection:    floatOr(m.WindDirection, DefaultWindDirection),
		CloudCover:       floatOr(m.CloudCover, DefaultCloudCover),
		PM25:             floatOr(m.PM25, 0),
		PM10:             floatOr(m.PM10, 0),
		Ozone:            floatOr(m.Ozone, 0),
		SoilMoisture:     floatOr(m.SoilMoisture, humidity*soilMoistureHumidityRatio),
		DrainageCapacity: floatOr(m.DrainageCapacity, DefaultDrainageCapacity),

		CoolingShelters:      intOr(m.CoolingShelters, 0),
		CheckDams:            intOr(m.CheckDams, 0),
		VegetationFeatures:   intOr(m.VegetationFeatures, 0),
		RetainingStructures:  intOr(m.RetainingStructures, 0),
		HistoricalLandslides: intOr(m.HistoricalLandslides, 0),
	}
}

// Merge overlays non-nil fields of other onto a copy of m. Used by the
// assessor to combine partial measurements from independent sources.
func (m Measurement) Merge(other Measurement) Measurement {
	if other.Precipitation != nil {
		m.Precipitation = other.Precipitation
	}
	if other.Elevation != nil {
		m.Elevation = other.Elevation
	}
	if other.Temperature != nil {
		m.Temperature = other.Temperature
	}
	if other.Humidity != nil {
		m.Humidity = other.Humidity
	}
	if other.WindSpeed != nil {
		m.WindSpeed = other.WindSpeed
	}
	if other.WindDirection != nil {
		m.WindDirection = other.WindDirection
	}
	if other.CloudCover != nil {
		m.CloudCover = other.CloudCover
	}
	if other.PM25 != nil {
		m.PM25 = other.PM25
	}
	if other.PM10 != nil {
		m.PM10 = other.PM10
	}
	if other.Ozone != nil {
		m.Ozone = other.Ozone
	}
	if other.SoilMoisture != nil {
		m.SoilMoisture = other.SoilMoisture
	}
	if other.DrainageCapacity != nil {
		m.DrainageCapacity = other.DrainageCapacity
	}
	if other.CoolingShelters != nil {
		m.CoolingShelters = other.CoolingShelters
	}
	if other.CheckDams != nil {
		m.CheckDams = other.CheckDams
	}
	if other.VegetationFeatures != nil {
		m.VegetationFeatures = other.VegetationFeatures
	}
	if other.RetainingStructures != nil {
		m.RetainingStructures = other.RetainingStructures
	}
	if other.HistoricalLandslides != nil {
		m.HistoricalLandslides = other.HistoricalLandslides
	}
	return m
}

// Float returns a pointer to v, for building sparse measurements.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building sparse measurements.
func Int(v int) *int { return &v }

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
