package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka publishing is optional: the service assesses on demand over HTTP
	// and additionally emits each analysis to the sink topic when brokers are
	// configured.
	KafkaBrokers   []string
	KafkaSinkTopic string
	KafkaEnabled   bool

	// Weather source (met.no locationforecast).
	WeatherBaseURL   string
	WeatherUserAgent string
	WeatherTimeout   time.Duration
	WeatherCacheTTL  time.Duration

	// Air quality source (OpenAQ-style latest measurements).
	AirBaseURL  string
	AirTimeout  time.Duration
	AirCacheTTL time.Duration

	// Site feature source (WFS GetFeature endpoint).
	FeatureBaseURL   string
	FeatureTimeout   time.Duration
	FeatureCacheSize int

	// Home location assessed at startup to warm caches and prove readiness.
	HomeLat float64
	HomeLon float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parseTimeout("WEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	weatherCacheTTL, err := parseTimeout("WEATHER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	airTimeout, err := parseTimeout("AIR_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	airCacheTTL, err := parseTimeout("AIR_CACHE_TTL", "15m")
	if err != nil {
		return nil, err
	}
	featureTimeout, err := parseTimeout("FEATURE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	homeLat, err := parseCoord("HOME_LAT", "37.5663", -90, 90)
	if err != nil {
		return nil, err
	}
	homeLon, err := parseCoord("HOME_LON", "126.9779", -180, 180)
	if err != nil {
		return nil, err
	}

	brokersRaw := os.Getenv("KAFKA_BROKERS")
	brokers := sharedcfg.ParseBrokers(brokersRaw)
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:   brokers,
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "risk-analyses"),
		KafkaEnabled:   kafkaEnabled,

		WeatherBaseURL:   sharedcfg.EnvOrDefault("WEATHER_BASE_URL", "https://api.met.no/weatherapi/locationforecast/2.0"),
		WeatherUserAgent: sharedcfg.EnvOrDefault("WEATHER_USER_AGENT", "climate-risk-service/1.0"),
		WeatherTimeout:   weatherTimeout,
		WeatherCacheTTL:  weatherCacheTTL,

		AirBaseURL:  sharedcfg.EnvOrDefault("AIR_BASE_URL", "https://api.openaq.org/v3"),
		AirTimeout:  airTimeout,
		AirCacheTTL: airCacheTTL,

		FeatureBaseURL:   sharedcfg.EnvOrDefault("FEATURE_BASE_URL", ""),
		FeatureTimeout:   featureTimeout,
		FeatureCacheSize: parseFeatureCacheSize(),

		HomeLat: homeLat,
		HomeLon: homeLon,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when Kafka is enabled")
	}
	if cfg.WeatherUserAgent == "" {
		return nil, errors.New("WEATHER_USER_AGENT must not be empty")
	}

	return cfg, nil
}

func parseTimeout(name, def string) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(name, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return d, nil
}

func parseCoord(name, def string, min, max float64) (float64, error) {
	s := sharedcfg.EnvOrDefault(name, def)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < min || v > max {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}

func parseFeatureCacheSize() int {
	if s := os.Getenv("FEATURE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
