package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       []string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	LogLevel  string
	LogFormat string

	VehicleAPIURL string
	VehicleAPIKey string

	// SearchMode is auto, text or regex.
	SearchMode string
	// AdminRoutes are "METHOD /prefix" or "/prefix" entries. Empty means defaults.
	AdminRoutes []string

	StoragePath string
	// PublicRateLimit is requests per minute per client on public POST endpoints.
	PublicRateLimit int

	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := &Config{}
	var err error

	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING
	cfg.ProdOrigins = getEnvAsList("PROD_ORIGINS", nil)
	if cfg.IsProduction && len(cfg.ProdOrigins) == 0 {
		return nil, fmt.Errorf("PROD_ORIGINS is required when APP_ENV=%s", PROD_STRING)
	}
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// Parsed as time.Duration, e.g. "15m" or "1h".
	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	cfg.VehicleAPIURL = getEnv("VEHICLE_API_URL", "https://driver-vehicle-licensing.api.gov.uk/vehicle-enquiry/v1/vehicles")
	cfg.VehicleAPIKey = getEnv("VEHICLE_API_KEY", "")

	cfg.SearchMode = strings.ToLower(getEnv("SEARCH_MODE", "auto"))
	switch cfg.SearchMode {
	case "auto", "text", "regex":
	default:
		return nil, fmt.Errorf("invalid SEARCH_MODE %q: want auto, text or regex", cfg.SearchMode)
	}

	cfg.AdminRoutes = getEnvAsList("ADMIN_ROUTES", nil)
	cfg.StoragePath = getEnv("STORAGE_PATH", "./data")

	cfg.PublicRateLimit, err = getEnvAsInt("PUBLIC_RATE_LIMIT", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid PUBLIC_RATE_LIMIT: %w", err)
	}

	cfg.SeedAdminEmail = getEnv("SEED_ADMIN_EMAIL", "")
	cfg.SeedAdminPassword = getEnv("SEED_ADMIN_PASSWORD", "")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}
	return val, nil
}

// getEnvAsList splits a comma separated variable, dropping blank items.
func getEnvAsList(key string, defaultValue []string) []string {
	valStr := getEnv(key, "")
	if strings.TrimSpace(valStr) == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
