package metno

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// Client implements domain.WeatherSource against the met.no locationforecast
// API. The terms of service require an identifying User-Agent on every
// request; anonymous clients are throttled.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a locationforecast client.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Current fetches the instantaneous conditions for a coordinate from the
// first timeseries entry of the compact forecast.
func (c *Client) Current(ctx context.Context, lat, lon float64) (domain.WeatherObservation, error) {
	u := fmt.Sprintf("%s/compact?lat=%.4f&lon=%.4f", c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.WeatherObservation{}, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("decode response: %w", err)
	}

	if len(forecast.Properties.Timeseries) == 0 {
		return domain.WeatherObservation{}, fmt.Errorf("weather API returned no timeseries for %.4f,%.4f", lat, lon)
	}

	current := forecast.Properties.Timeseries[0]
	details := current.Data.Instant.Details

	return domain.WeatherObservation{
		Temperature:   details.AirTemperature,
		Humidity:      details.RelativeHumidity,
		WindSpeed:     details.WindSpeed,
		WindDirection: details.WindFromDirection,
		CloudCover:    details.CloudAreaFraction,
		Precipitation: current.Data.Next1Hours.Details.PrecipitationAmount,
	}, nil
}

// locationforecast response types, trimmed to the fields consumed here.

type forecastResponse struct {
	Properties struct {
		Timeseries []timeseriesEntry `json:"timeseries"`
	} `json:"properties"`
}

type timeseriesEntry struct {
	Time time.Time `json:"time"`
	Data struct {
		Instant struct {
			Details struct {
				AirTemperature    float64 `json:"air_temperature"`
				RelativeHumidity  float64 `json:"relative_humidity"`
				WindSpeed         float64 `json:"wind_speed"`
				WindFromDirection float64 `json:"wind_from_direction"`
				CloudAreaFraction float64 `json:"cloud_area_fraction"`
			} `json:"details"`
		} `json:"instant"`
		Next1Hours struct {
			Details struct {
				PrecipitationAmount float64 `json:"precipitation_amount"`
			} `json:"details"`
		} `json:"next_1_hours"`
	} `json:"data"`
}
