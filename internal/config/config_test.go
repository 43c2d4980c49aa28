package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsValidatesDriver(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "mongodb"
	assert.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsPostgresNeedsDSN(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "postgres"
	cfg.PostgresDSN = ""
	assert.Error(t, cfg.ResolveDefaults())

	cfg.PostgresDSN = "postgres://localhost/seniorvoice"
	assert.NoError(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsRepairsHistoryCap(t *testing.T) {
	cfg := NewForTesting()
	cfg.HistoryCap = -1
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, 50, cfg.HistoryCap)
}

func TestHTTPAddr(t *testing.T) {
	cfg := NewForTesting()
	cfg.HTTPPort = 8990
	assert.Equal(t, ":8990", cfg.HTTPAddr())
}
