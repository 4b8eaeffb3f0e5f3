package geofeature

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// surveyRadiusDeg is the half-width of the bounding box queried around a
// point, roughly 500 m at mid latitudes.
const surveyRadiusDeg = 0.005

// Feature layers counted for a site survey. Layer names follow the
// municipal WFS publication; each maps to one count on the survey.
const (
	layerCoolingShelters  = "cooling_shelters"
	layerCheckDams        = "check_dams"
	layerVegetation       = "vegetation_patches"
	layerRetaining        = "retaining_structures"
	layerLandslideEvents  = "landslide_events"
	layerElevationSamples = "elevation_points"
)

// Client implements domain.FeatureSource against a WFS GetFeature endpoint
// serving GeoJSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a WFS feature client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Survey counts protective and vulnerable features around a point and
// samples its elevation. Layer queries run sequentially; the WFS servers in
// the field rate-limit aggressively enough that parallel queries get 429s.
func (c *Client) Survey(ctx context.Context, lat, lon float64) (domain.SiteSurvey, error) {
	var survey domain.SiteSurvey

	counts := []struct {
		layer string
		dst   *int
	}{
		{layerCoolingShelters, &survey.CoolingShelters},
		{layerCheckDams, &survey.CheckDams},
		{layerVegetation, &survey.VegetationFeatures},
		{layerRetaining, &survey.RetainingStructures},
		{layerLandslideEvents, &survey.HistoricalLandslides},
	}
	for _, q := range counts {
		features, err := c.getFeatures(ctx, q.layer, lat, lon)
		if err != nil {
			return domain.SiteSurvey{}, fmt.Errorf("layer %s: %w", q.layer, err)
		}
		*q.dst = len(features)
	}

	features, err := c.getFeatures(ctx, layerElevationSamples, lat, lon)
	if err != nil {
		return domain.SiteSurvey{}, fmt.Errorf("layer %s: %w", layerElevationSamples, err)
	}
	if elev, ok := nearestElevation(features); ok {
		survey.Elevation = &elev
	}

	return survey, nil
}

func (c *Client) getFeatures(ctx context.Context, layer string, lat, lon float64) ([]feature, error) {
	params := url.Values{
		"service":      {"WFS"},
		"version":      {"2.0.0"},
		"request":      {"GetFeature"},
		"typeNames":    {layer},
		"outputFormat": {"application/json"},
		"bbox": {fmt.Sprintf("%.6f,%.6f,%.6f,%.6f",
			lon-surveyRadiusDeg, lat-surveyRadiusDeg,
			lon+surveyRadiusDeg, lat+surveyRadiusDeg)},
	}
	u := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feature request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("feature API error: status %d: %s", resp.StatusCode, body)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return fc.Features, nil
}

// nearestElevation extracts an elevation reading from the sample features.
// Key spelling varies between publishers, so lookup goes through the shared
// property extractor; samples without a usable value are skipped.
func nearestElevation(features []feature) (float64, bool) {
	for _, f := range features {
		elev := domain.ExtractNumber(f.Properties, math.NaN(), "elevation", "elev", "elev_m", "height", "alt")
		if !math.IsNaN(elev) {
			return elev, true
		}
	}
	return 0, false
}

// GeoJSON response types, trimmed to the fields consumed here.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]any `json:"properties"`
}
