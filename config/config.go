package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Force-delete dependent handling. The store never cascades on its own, so a
// forced parent delete either leaves dependents pointing at the removed row or
// clears the reference field on each dependent first.
const (
	ForceDeleteOrphan = "orphan"
	ForceDeleteDetach = "detach"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// CORS
	CORSAllowOrigins []string

	// Delete policy
	ForceDeleteMode     string
	DependentSampleSize int

	// Listing defaults
	DefaultPageSize int
	MaxPageSize     int

	// Booth defaults
	DefaultBoothSlot int

	// Rate limiting
	RateLimitPerWindow int
	RateLimitWindow    time.Duration

	// Monitoring
	EnableMetrics bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// CORS
		CORSAllowOrigins: getEnvAsSlice("CORS_ALLOW_ORIGINS", "*"),

		// Delete policy
		ForceDeleteMode:     getEnv("FORCE_DELETE_MODE", ForceDeleteOrphan),
		DependentSampleSize: getEnvAsInt("DEPENDENT_SAMPLE_SIZE", 5),

		// Listings
		DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:     getEnvAsInt("MAX_PAGE_SIZE", 100),

		// Booths
		DefaultBoothSlot: getEnvAsInt("DEFAULT_BOOTH_SLOT", 10),

		// Rate limiting
		RateLimitPerWindow: getEnvAsInt("RATE_LIMIT_PER_WINDOW", 30),
		RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}

	if cfg.ForceDeleteMode != ForceDeleteOrphan && cfg.ForceDeleteMode != ForceDeleteDetach {
		log.Printf("Unknown FORCE_DELETE_MODE %q, falling back to %q", cfg.ForceDeleteMode, ForceDeleteOrphan)
		cfg.ForceDeleteMode = ForceDeleteOrphan
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
