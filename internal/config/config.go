package config

import (
	"os"
	"strconv"
)

// Config holds the process-wide settings read from the environment.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string

	JWTSecret     string
	JWTTTLHours   int
	AdminUsername string
	AdminPassword string

	// RuleSource selects where active rules come from:
	// "static", "file", "store", or "api".
	RuleSource          string
	RulesFile           string
	RuleCacheTTLSeconds int

	ScraperTimeoutMS  int
	ScraperMaxRetries int

	// Priority band thresholds, inclusive confidence floors.
	BandBest   int
	BandMedium int
}

// Load reads the configuration once, applying defaults for anything unset.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "coveradvisor"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTLHours:   getEnvInt("JWT_TTL_HOURS", 12),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),

		RuleSource:          getEnv("RULE_SOURCE", "static"),
		RulesFile:           os.Getenv("RULES_FILE"),
		RuleCacheTTLSeconds: getEnvInt("RULE_CACHE_TTL_SECONDS", 300),

		ScraperTimeoutMS:  getEnvInt("SCRAPER_TIMEOUT_MS", 10000),
		ScraperMaxRetries: getEnvInt("SCRAPER_MAX_RETRIES", 3),

		BandBest:   getEnvInt("BAND_BEST", 85),
		BandMedium: getEnvInt("BAND_MEDIUM", 70),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
