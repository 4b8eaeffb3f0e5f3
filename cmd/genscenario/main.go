// Command genscenario generates deterministic measurement and analysis JSON
// fixtures for every simulated scenario. It uses the actual scoring engine
// under a frozen clock so fixtures match real engine behavior and stay
// byte-stable across runs.
//
// Usage:
//
//	go run ./cmd/genscenario -out data/fixtures -seed 42
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// fixtureGeo is the coordinate attached to every generated analysis.
var fixtureGeo = domain.Geo{Lat: 37.5664, Lon: 126.9779}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for fixture files")
	seed := flag.Int64("seed", 42, "random seed for the simulator")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Freeze the clock for reproducible AssessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	sim := domain.NewSimulator(rand.NewSource(*seed))

	for _, name := range domain.Scenarios() {
		m, err := sim.Generate(name)
		if err != nil {
			return err
		}
		analysis := domain.Analyze(fixtureGeo, m)

		if err := writeJSON(filepath.Join(*out, name+"_measurement.json"), m); err != nil {
			return err
		}
		if err := writeJSON(filepath.Join(*out, name+"_analysis.json"), analysis); err != nil {
			return err
		}
		log.Printf("%s: overall %d (%s)", name, analysis.OverallScore, analysis.OverallLevel)
	}

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
