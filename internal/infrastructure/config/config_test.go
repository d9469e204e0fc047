package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Trayline", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Positive(t, cfg.Prep.LeaseTTL)
	assert.Equal(t, 50, cfg.Prep.ExecutionHistory)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresLeaseTTL(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Prep.LeaseTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		Username: "trayline",
		Password: "secret",
		Database: "trayline",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5432 user=trayline password=secret dbname=trayline sslmode=require",
		c.DSN())
}
