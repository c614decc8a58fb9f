package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the runtime settings for the server and dbtool binaries.
type Config struct {
	Port             string
	DBDriver         string
	DBPath           string
	DatabaseURL      string
	SeedPath         string
	RedisURL         string
	VenueCacheTTL    time.Duration
	PlanRateLimit    float64
	PlanRateBurst    int
	BatchConcurrency int
}

// Load reads every setting from the environment, falling back to local
// development defaults.
func Load() Config {
	return Config{
		Port:             Get("PORT", "8080"),
		DBDriver:         strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:           Get("DB_PATH", "data/app.db"),
		DatabaseURL:      Get("DATABASE_URL", ""),
		SeedPath:         Get("SEED_PATH", "data/seeds/venues.yaml"),
		RedisURL:         Get("REDIS_URL", ""),
		VenueCacheTTL:    GetDuration("VENUE_CACHE_TTL", 10*time.Minute),
		PlanRateLimit:    GetFloat("PLAN_RATE_LIMIT", 20),
		PlanRateBurst:    GetInt("PLAN_RATE_BURST", 40),
		BatchConcurrency: GetInt("BATCH_CONCURRENCY", 4),
	}
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int key=%s value=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid float key=%s value=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration key=%s value=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
