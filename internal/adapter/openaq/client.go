package openaq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// Ozone µg/m³ to ppm at 25 °C and 1 atm. Scoring thresholds are in ppm but
// most monitoring networks report mass concentration.
const ozoneUgm3PerPPM = 1960.0

// searchRadiusM bounds the station search around the queried coordinate.
const searchRadiusM = 10000

// Client implements domain.AirSource using an OpenAQ-style latest-measurements
// endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an air quality client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Latest fetches the most recent pollutant readings near a coordinate. When
// several stations report the same parameter the worst reading wins, since
// the assessment is for the area rather than a single monitor.
func (c *Client) Latest(ctx context.Context, lat, lon float64) (domain.AirObservation, error) {
	params := url.Values{
		"coordinates": {fmt.Sprintf("%.4f,%.4f", lat, lon)},
		"radius":      {fmt.Sprintf("%d", searchRadiusM)},
		"limit":       {"100"},
	}
	u := fmt.Sprintf("%s/latest?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.AirObservation{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AirObservation{}, fmt.Errorf("air quality request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.AirObservation{}, fmt.Errorf("air quality API error: status %d: %s", resp.StatusCode, body)
	}

	var latest latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return domain.AirObservation{}, fmt.Errorf("decode response: %w", err)
	}

	var obs domain.AirObservation
	for _, result := range latest.Results {
		for _, m := range result.Measurements {
			switch strings.ToLower(m.Parameter) {
			case "pm25":
				obs.PM25 = max(obs.PM25, m.Value)
			case "pm10":
				obs.PM10 = max(obs.PM10, m.Value)
			case "o3":
				obs.Ozone = max(obs.Ozone, ozonePPM(m.Value, m.Unit))
			}
		}
	}
	return obs, nil
}

func ozonePPM(value float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "ppm":
		return value
	case "ppb":
		return value / 1000
	default:
		// Mass concentration, µg/m³.
		return value / ozoneUgm3PerPPM
	}
}

// OpenAQ response types, trimmed to the fields consumed here.

type latestResponse struct {
	Results []struct {
		Location     string `json:"location"`
		Measurements []struct {
			Parameter string  `json:"parameter"`
			Value     float64 `json:"value"`
			Unit      string  `json:"unit"`
		} `json:"measurements"`
	} `json:"results"`
}
