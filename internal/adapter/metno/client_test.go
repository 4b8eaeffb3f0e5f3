package metno

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

const testUserAgent = "climate-risk-service-test/0.0"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient() *Client {
	c := NewClient("https://api.met.no/weatherapi/locationforecast/2.0", testUserAgent, 5*time.Second, discardLogger())
	httpmock.ActivateNonDefault(c.httpClient)
	return c
}

const compactFixture = `{
  "properties": {
    "timeseries": [
      {
        "time": "2026-08-25T09:00:00Z",
        "data": {
          "instant": {
            "details": {
              "air_temperature": 31.4,
              "relative_humidity": 78.0,
              "wind_speed": 4.2,
              "wind_from_direction": 215.0,
              "cloud_area_fraction": 62.5
            }
          },
          "next_1_hours": {
            "details": {
              "precipitation_amount": 8.4
            }
          }
        }
      },
      {
        "time": "2026-08-25T10:00:00Z",
        "data": {
          "instant": {"details": {"air_temperature": 99.0}}
        }
      }
    ]
  }
}`

func TestClient_Current(t *testing.T) {
	c := testClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet,
		"https://api.met.no/weatherapi/locationforecast/2.0/compact",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, testUserAgent, req.Header.Get("User-Agent"))
			assert.Equal(t, "37.5664", req.URL.Query().Get("lat"))
			assert.Equal(t, "126.9779", req.URL.Query().Get("lon"))
			return httpmock.NewStringResponse(http.StatusOK, compactFixture), nil
		})

	obs, err := c.Current(context.Background(), 37.5664, 126.9779)
	require.NoError(t, err)

	assert.Equal(t, 31.4, obs.Temperature)
	assert.Equal(t, 78.0, obs.Humidity)
	assert.Equal(t, 4.2, obs.WindSpeed)
	assert.Equal(t, 215.0, obs.WindDirection)
	assert.Equal(t, 62.5, obs.CloudCover)
	assert.Equal(t, 8.4, obs.Precipitation)
}

func TestClient_Current_EmptyTimeseries(t *testing.T) {
	c := testClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet,
		"https://api.met.no/weatherapi/locationforecast/2.0/compact",
		httpmock.NewStringResponder(http.StatusOK, `{"properties":{"timeseries":[]}}`))

	_, err := c.Current(context.Background(), 37.5664, 126.9779)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no timeseries")
}

func TestClient_Current_Throttled(t *testing.T) {
	c := testClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet,
		"https://api.met.no/weatherapi/locationforecast/2.0/compact",
		httpmock.NewStringResponder(http.StatusTooManyRequests, "throttled"))

	_, err := c.Current(context.Background(), 37.5664, 126.9779)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestCachedSource(t *testing.T) {
	t.Run("second lookup hits the cache", func(t *testing.T) {
		inner := &countingSource{obs: domain.WeatherObservation{Temperature: 25}}
		cached := NewCachedSource(inner, time.Minute, observability.NewMetricsForTesting())

		first, err := cached.Current(context.Background(), 37.5664, 126.9779)
		require.NoError(t, err)
		second, err := cached.Current(context.Background(), 37.5664, 126.9779)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("distinct coordinates miss", func(t *testing.T) {
		inner := &countingSource{}
		cached := NewCachedSource(inner, time.Minute, observability.NewMetricsForTesting())

		_, err := cached.Current(context.Background(), 37.5664, 126.9779)
		require.NoError(t, err)
		_, err = cached.Current(context.Background(), 35.1796, 129.0756)
		require.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		inner := &countingSource{failFirst: true}
		cached := NewCachedSource(inner, time.Minute, observability.NewMetricsForTesting())

		_, err := cached.Current(context.Background(), 37.5664, 126.9779)
		require.Error(t, err)
		_, err = cached.Current(context.Background(), 37.5664, 126.9779)
		require.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})
}

type countingSource struct {
	obs       domain.WeatherObservation
	calls     int
	failFirst bool
}

func (s *countingSource) Current(_ context.Context, _, _ float64) (domain.WeatherObservation, error) {
	s.calls++
	if s.failFirst && s.calls == 1 {
		return domain.WeatherObservation{}, assert.AnError
	}
	return s.obs, nil
}
