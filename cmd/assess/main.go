// Command assess runs a single risk assessment and prints the analysis as
// JSON. It either queries the live data sources for a coordinate or scores a
// named simulated scenario offline.
//
// Usage:
//
//	go run ./cmd/assess -lat 37.5664 -lon 126.9779
//	go run ./cmd/assess -scenario downpour -seed 7
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/couchcryptid/climate-risk-service/internal/adapter/geofeature"
	"github.com/couchcryptid/climate-risk-service/internal/adapter/metno"
	"github.com/couchcryptid/climate-risk-service/internal/adapter/openaq"
	"github.com/couchcryptid/climate-risk-service/internal/assess"
	"github.com/couchcryptid/climate-risk-service/internal/config"
	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	lat := flag.Float64("lat", 0, "latitude to assess")
	lon := flag.Float64("lon", 0, "longitude to assess")
	scenario := flag.String("scenario", "", "simulated scenario instead of live sources ("+strings.Join(domain.Scenarios(), ", ")+")")
	seed := flag.Int64("seed", 1, "random seed for the simulated scenario")
	flag.Parse()

	var analysis domain.RiskAnalysis
	if *scenario != "" {
		m, err := domain.NewSimulator(rand.NewSource(*seed)).Generate(*scenario)
		if err != nil {
			return err
		}
		analysis = domain.Analyze(domain.Geo{Lat: *lat, Lon: *lon}, m)
	} else {
		if *lat < -90 || *lat > 90 || *lon < -180 || *lon > 180 {
			return fmt.Errorf("coordinates out of range: %f,%f", *lat, *lon)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := observability.NewLogger(cfg)
		metrics := observability.NewMetrics()

		weather := metno.NewClient(cfg.WeatherBaseURL, cfg.WeatherUserAgent, cfg.WeatherTimeout, logger)
		air := openaq.NewClient(cfg.AirBaseURL, cfg.AirTimeout, logger)
		var features domain.FeatureSource
		if cfg.FeatureBaseURL != "" {
			features = geofeature.NewClient(cfg.FeatureBaseURL, cfg.FeatureTimeout, logger)
		}

		assessor := assess.New(weather, air, features, nil, logger, metrics)
		analysis, err = assessor.Assess(context.Background(), *lat, *lon)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis)
}
