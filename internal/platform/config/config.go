package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	DatabaseURL  string
	SeedDemoData bool

	Redis    RedisConfig
	Geocode  GeocodeConfig
	Kafka    KafkaConfig
	Defaults Defaults

	LogLevel  string
	LogFormat string
}

// RedisConfig configures the optional geocode cache backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// GeocodeConfig configures the geocoding provider.
type GeocodeConfig struct {
	GoogleMapsAPIKey string
	CacheTTL         time.Duration
	Timeout          time.Duration
}

// KafkaConfig configures event publishing. Empty Brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Defaults are applied when the user or device supplies nothing better.
type Defaults struct {
	MapCenterLat float64
	MapCenterLng float64
	CountryCode  string
	Locale       string
}

// Default map centre: London.
const (
	defaultCenterLat = 51.5074
	defaultCenterLng = -0.1278
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          getenv("LOOVIEW_ADDR", ":8080"),
		JWTSigningKey: getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     getenv("JWT_ISSUER", "looview-auth"),
		JWTAudience:   getenv("JWT_AUDIENCE", "looview"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SeedDemoData:  os.Getenv("SEED_DEMO_DATA") == "true",
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Geocode: GeocodeConfig{
			GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getenv("KAFKA_TOPIC", "looview.toilets"),
		},
		Defaults: Defaults{
			CountryCode: strings.ToUpper(getenv("DEFAULT_COUNTRY_CODE", "GB")),
			Locale:      getenv("DEFAULT_LOCALE", "en"),
		},
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.Geocode.CacheTTL, err = duration("GEOCODE_CACHE_TTL", 24*time.Hour); err != nil {
		return Server{}, err
	}
	if cfg.Geocode.Timeout, err = duration("GEOCODE_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Defaults.MapCenterLat, cfg.Defaults.MapCenterLng, err = ParseCenter(os.Getenv("DEFAULT_MAP_CENTER")); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// ParseCenter parses "lat,lng". Empty input yields the London default.
func ParseCenter(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultCenterLat, defaultCenterLng, nil
	}
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("DEFAULT_MAP_CENTER: want lat,lng, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("DEFAULT_MAP_CENTER: invalid latitude %q", latStr)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("DEFAULT_MAP_CENTER: invalid longitude %q", lngStr)
	}
	return lat, lng, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
