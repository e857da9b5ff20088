package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	DatabaseURL string
	Port        string
	Environment string

	// Matching defaults
	DefaultMinScore      int
	InvestorMatchLimit   int
	BusinessMatchLimit   int
	RefreshStaleDays     int
	RefreshBatchSize     int
	RefreshIntervalMin   int
	RefreshMaxConcurrent int

	// Security configuration
	AllowedOrigins  string
	TrustedProxies  string
	EnableRateLimit bool
	MaxRequestSize  int64
}

// New creates a new configuration instance from environment variables
func New() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		DefaultMinScore:      getEnvAsInt("MATCH_MIN_SCORE", 50),
		InvestorMatchLimit:   getEnvAsInt("INVESTOR_MATCH_LIMIT", 20),
		BusinessMatchLimit:   getEnvAsInt("BUSINESS_MATCH_LIMIT", 15),
		RefreshStaleDays:     getEnvAsInt("REFRESH_STALE_DAYS", 7),
		RefreshBatchSize:     getEnvAsInt("REFRESH_BATCH_SIZE", 50),
		RefreshIntervalMin:   getEnvAsInt("REFRESH_INTERVAL_MINUTES", 60),
		RefreshMaxConcurrent: getEnvAsInt("REFRESH_MAX_CONCURRENT", 10),

		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", ""),
		TrustedProxies:  getEnv("TRUSTED_PROXIES", ""),
		EnableRateLimit: getEnv("ENABLE_RATE_LIMIT", "true") == "true",
		MaxRequestSize:  getEnvAsInt64("MAX_REQUEST_SIZE", 10*1024*1024), // 10MB default
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return []string{
			"https://app.bvester.com",
			"https://www.bvester.com",
		}
	}
	return strings.Split(c.AllowedOrigins, ",")
}

// GetTrustedProxies returns a slice of trusted proxy IPs
func (c *Config) GetTrustedProxies() []string {
	if c.TrustedProxies == "" {
		return []string{}
	}
	return strings.Split(c.TrustedProxies, ",")
}
