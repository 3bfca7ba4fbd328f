package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("AIRTABLE_API_KEY", "")
	t.Setenv("AIRTABLE_BASE_ID", "")
	t.Setenv("AIRTABLE_BASE_URL", "")
	t.Setenv("AIRTABLE_MAX_RETRIES", "")
	t.Setenv("BETTOR_CACHE_TTL_SECONDS", "")

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 60*time.Second, cfg.BettorCacheTTL)
	assert.Equal(t, "test", cfg.Environment)
}

func TestLoadDerivesBaseURLFromBaseID(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("AIRTABLE_BASE_ID", "appXYZ")
	t.Setenv("AIRTABLE_BASE_URL", "")

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.airtable.com/v0/appXYZ", cfg.AirtableBaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("AIRTABLE_MAX_RETRIES", "5")
	t.Setenv("BETTOR_CACHE_TTL_SECONDS", "120")

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 120*time.Second, cfg.BettorCacheTTL)
}

func TestLoadRequiresCredentialsOutsideTests(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AIRTABLE_API_KEY", "")
	t.Setenv("AIRTABLE_BASE_ID", "")
	t.Setenv("AIRTABLE_BASE_URL", "")

	_, err := load()
	require.Error(t, err)
}
