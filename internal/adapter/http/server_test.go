package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubAssessor struct {
	analysis  domain.RiskAnalysis
	assessErr error
	readyErr  error

	lastLat, lastLon float64
}

func (s *stubAssessor) Assess(_ context.Context, lat, lon float64) (domain.RiskAnalysis, error) {
	s.lastLat, s.lastLon = lat, lon
	return s.analysis, s.assessErr
}

func (s *stubAssessor) CheckReadiness(_ context.Context) error {
	return s.readyErr
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestAssessmentEndpoint(t *testing.T) {
	assessor := &stubAssessor{analysis: domain.RiskAnalysis{
		Geo:          domain.Geo{Lat: 37.5664, Lon: 126.9779},
		OverallScore: 42,
		OverallLevel: domain.LevelMedium,
	}}
	srv := NewServer(":0", assessor, discardLogger())

	rec := get(t, srv, "/v1/assessment?lat=37.5664&lon=126.9779")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var analysis domain.RiskAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, 42, analysis.OverallScore)
	assert.Equal(t, domain.LevelMedium, analysis.OverallLevel)

	assert.Equal(t, 37.5664, assessor.lastLat)
	assert.Equal(t, 126.9779, assessor.lastLon)
}

func TestAssessmentEndpoint_Validation(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"missing lat", "/v1/assessment?lon=126.9", "lat is required"},
		{"missing lon", "/v1/assessment?lat=37.5", "lon is required"},
		{"non-numeric lat", "/v1/assessment?lat=abc&lon=126.9", "lat must be a number"},
		{"lat above range", "/v1/assessment?lat=90.1&lon=126.9", "lat is out of range"},
		{"lat below range", "/v1/assessment?lat=-90.1&lon=126.9", "lat is out of range"},
		{"lon above range", "/v1/assessment?lat=37.5&lon=180.5", "lon is out of range"},
		{"lon below range", "/v1/assessment?lat=37.5&lon=-181", "lon is out of range"},
	}

	srv := NewServer(":0", &stubAssessor{}, discardLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, tt.target)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestAssessmentEndpoint_BoundaryCoordinatesAccepted(t *testing.T) {
	srv := NewServer(":0", &stubAssessor{}, discardLogger())

	for _, target := range []string{
		"/v1/assessment?lat=90&lon=180",
		"/v1/assessment?lat=-90&lon=-180",
		"/v1/assessment?lat=0&lon=0",
	} {
		rec := get(t, srv, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestAssessmentEndpoint_AssessorFailure(t *testing.T) {
	srv := NewServer(":0", &stubAssessor{assessErr: errors.New("cancelled")}, discardLogger())

	rec := get(t, srv, "/v1/assessment?lat=37.5&lon=126.9")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(":0", &stubAssessor{}, discardLogger())

	rec := get(t, srv, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadyEndpoint(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := NewServer(":0", &stubAssessor{}, discardLogger())

		rec := get(t, srv, "/readyz")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
	})

	t.Run("not ready", func(t *testing.T) {
		srv := NewServer(":0", &stubAssessor{readyErr: errors.New("no assessment completed yet")}, discardLogger())

		rec := get(t, srv, "/readyz")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body["status"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := NewServer(":0", &stubAssessor{}, discardLogger())

	rec := get(t, srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := NewServer(":0", &stubAssessor{}, discardLogger())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/assessment?lat=1&lon=1", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
