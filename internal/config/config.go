package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Firestore   FirestoreConfig
	JWT         JWTConfig
	App         AppConfig
	Roster      RosterConfig
	Aggregation AggregationConfig
	Reports     ReportsConfig
}

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	CompanyName    string
	FrontendOrigin string
}

type RosterConfig struct {
	DefaultHourlyCost float64
	AdminUsers        []string
	CacheTTL          time.Duration
}

type AggregationConfig struct {
	BatchSize  int
	BatchDelay time.Duration
}

type ReportsConfig struct {
	CachePath  string
	StaleAfter time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine in production, env vars win anyway.
	_ = godotenv.Load()

	config := &Config{}

	config.Firestore = FirestoreConfig{
		ProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
		CredentialsFile: getEnv("FIRESTORE_CREDENTIALS_FILE", ""),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CompanyName:    getEnv("COMPANY_NAME", "LumaClean"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Roster configuration
	defaultHourlyCost, err := strconv.ParseFloat(getEnv("DEFAULT_HOURLY_COST", "15.00"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_HOURLY_COST: %w", err)
	}
	rosterTTL, err := time.ParseDuration(getEnv("ROSTER_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROSTER_CACHE_TTL: %w", err)
	}

	config.Roster = RosterConfig{
		DefaultHourlyCost: defaultHourlyCost,
		AdminUsers:        getEnvSlice("ADMIN_USERS"),
		CacheTTL:          rosterTTL,
	}

	// Aggregation configuration
	batchSize, err := strconv.Atoi(getEnv("AGGREGATION_BATCH_SIZE", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid AGGREGATION_BATCH_SIZE: %w", err)
	}
	batchDelay, err := time.ParseDuration(getEnv("AGGREGATION_BATCH_DELAY", "200ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid AGGREGATION_BATCH_DELAY: %w", err)
	}

	config.Aggregation = AggregationConfig{
		BatchSize:  batchSize,
		BatchDelay: batchDelay,
	}

	// Annual report cache configuration
	staleAfter, err := time.ParseDuration(getEnv("ANNUAL_CACHE_STALE_AFTER", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANNUAL_CACHE_STALE_AFTER: %w", err)
	}

	config.Reports = ReportsConfig{
		CachePath:  getEnv("ANNUAL_CACHE_PATH", "annual_reports.db"),
		StaleAfter: staleAfter,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Firestore.ProjectID == "" {
		return fmt.Errorf("FIRESTORE_PROJECT_ID is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Roster.DefaultHourlyCost <= 0 {
		return fmt.Errorf("DEFAULT_HOURLY_COST must be positive")
	}
	if c.Aggregation.BatchSize < 1 {
		return fmt.Errorf("AGGREGATION_BATCH_SIZE must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
