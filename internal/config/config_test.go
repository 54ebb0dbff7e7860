package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Contains(t, cfg.ConnectionString, "postgres://")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.Reprocess.BatchSize)
	assert.Equal(t, 8, cfg.Reprocess.BatchConcurrency)
	assert.Equal(t, float64(50), cfg.Reprocess.ReprocessPerSec)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_CONN_STRING", "postgres://db:5432/feeds")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROPAGATE_BATCH_SIZE", "250")
	t.Setenv("REPROCESS_RATE_PER_SEC", "12.5")

	cfg := Load()
	assert.Equal(t, "postgres://db:5432/feeds", cfg.ConnectionString)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250, cfg.Reprocess.BatchSize)
	assert.Equal(t, 12.5, cfg.Reprocess.ReprocessPerSec)
}

func TestLoad_IgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("PROPAGATE_BATCH_SIZE", "lots")

	cfg := Load()
	assert.Equal(t, 100, cfg.Reprocess.BatchSize)
}
