package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Marketplace API configuration
	APIBaseURL string
	AuthToken  string
	AuthCookie string

	// Origin site configuration
	OriginURL  string
	OriginName string
	CDNHint    string

	// Fetcher configuration
	FetchTimeout time.Duration
	MaxAttempts  int
	BlockTTL     time.Duration

	// Batch pacing between URLs
	MinDelay time.Duration
	MaxDelay time.Duration

	// Memcache configuration (optional, blocklist backend)
	MemcacheAddr string

	// Redis configuration (optional, created-listing stream)
	RedisAddr         string
	RedisDB           int
	RedisStream       string
	RedisStreamMaxLen int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "500"))
	maxAttempts, _ := strconv.Atoi(getEnv("FETCH_MAX_ATTEMPTS", "3"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "30"))
	blockTTL, _ := strconv.Atoi(getEnv("BLOCK_TTL_SECONDS", "300"))
	minDelay, _ := strconv.Atoi(getEnv("MIN_DELAY_SECONDS", "2"))
	maxDelay, _ := strconv.Atoi(getEnv("MAX_DELAY_SECONDS", "4"))

	return &Config{
		APIBaseURL:        getEnv("API_BASE_URL", "https://top-care-fashion.vercel.app"),
		AuthToken:         getEnv("AUTH_TOKEN", ""),
		AuthCookie:        getEnv("API_COOKIE", ""),
		OriginURL:         getEnv("ORIGIN_URL", "https://www.farfetch.com"),
		OriginName:        getEnv("ORIGIN_NAME", "Farfetch"),
		CDNHint:           getEnv("ORIGIN_CDN_HINT", "farfetch"),
		FetchTimeout:      time.Duration(fetchTimeout) * time.Second,
		MaxAttempts:       maxAttempts,
		BlockTTL:          time.Duration(blockTTL) * time.Second,
		MinDelay:          time.Duration(minDelay) * time.Second,
		MaxDelay:          time.Duration(maxDelay) * time.Second,
		MemcacheAddr:      getEnv("MEMCACHE_ADDR", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisDB:           redisDB,
		RedisStream:       getEnv("REDIS_STREAM", "listings"),
		RedisStreamMaxLen: redisStreamMaxLen,
		Environment:       getEnv("LISTINGWORKER_ENVIRONMENT", "development"),
	}
}

// Validate ensures all configuration values are coherent
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("API base URL must include a host")
	}

	if c.AuthToken == "" && c.AuthCookie == "" {
		return fmt.Errorf("either AUTH_TOKEN or API_COOKIE must be set")
	}

	origin, err := url.Parse(c.OriginURL)
	if err != nil {
		return fmt.Errorf("invalid origin URL: %w", err)
	}
	if origin.Host == "" {
		return fmt.Errorf("origin URL must include a host")
	}

	if c.MaxAttempts <= 0 {
		return fmt.Errorf("fetch max attempts must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.MinDelay < 0 || c.MaxDelay < 0 {
		return fmt.Errorf("delays cannot be negative")
	}
	if c.MinDelay > c.MaxDelay {
		return fmt.Errorf("min delay (%s) cannot exceed max delay (%s)", c.MinDelay, c.MaxDelay)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
