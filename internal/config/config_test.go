package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/garage")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "auto", cfg.SearchMode)
	assert.Equal(t, 30, cfg.PublicRateLimit)
	assert.Empty(t, cfg.AdminRoutes)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "secret")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_DSN")

	t.Setenv("DB_DSN", "postgres://localhost/garage")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadParsesLists(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PROD_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("ADMIN_ROUTES", "PATCH /v1/bookings, /v1/users")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.ProdOrigins)
	assert.Equal(t, []string{"PATCH /v1/bookings", "/v1/users"}, cfg.AdminRoutes)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"JWT_ACCESS_TOKEN_TTL": "soon",
		"BCRYPT_COST":          "high",
		"SEARCH_MODE":          "fuzzy",
		"PUBLIC_RATE_LIMIT":    "many",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestLoadProductionNeedsOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PROD_ORIGINS", " , ")

	_, err := Load()
	assert.ErrorContains(t, err, "PROD_ORIGINS")
}
