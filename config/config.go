package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Record store configuration
	AirtableAPIKey  string
	AirtableBaseID  string
	AirtableBaseURL string // optional override, mainly for tests

	// Client tuning
	MaxRetries     int
	BettorCacheTTL time.Duration

	// Environment
	Environment string // "development", "production" or "test"
	LogLevel    string
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from a .env file (if present) and environment
// variables
func load() (*Config, error) {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	config := &Config{
		AirtableAPIKey:  os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID:  os.Getenv("AIRTABLE_BASE_ID"),
		AirtableBaseURL: os.Getenv("AIRTABLE_BASE_URL"),

		MaxRetries:     3,
		BettorCacheTTL: 60 * time.Second,

		Environment: os.Getenv("ENVIRONMENT"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	if retries := os.Getenv("AIRTABLE_MAX_RETRIES"); retries != "" {
		if parsed, err := strconv.Atoi(retries); err == nil {
			config.MaxRetries = parsed
		}
	}
	if ttl := os.Getenv("BETTOR_CACHE_TTL_SECONDS"); ttl != "" {
		if parsed, err := strconv.Atoi(ttl); err == nil {
			config.BettorCacheTTL = time.Duration(parsed) * time.Second
		}
	}

	if config.AirtableBaseURL == "" && config.AirtableBaseID != "" {
		config.AirtableBaseURL = "https://api.airtable.com/v0/" + config.AirtableBaseID
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.AirtableAPIKey == "" {
			return nil, fmt.Errorf("AIRTABLE_API_KEY is required")
		}
		if config.AirtableBaseURL == "" {
			return nil, fmt.Errorf("AIRTABLE_BASE_ID is required")
		}
	}

	return config, nil
}
