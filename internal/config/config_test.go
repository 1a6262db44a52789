package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FEC_DB", "")
	t.Setenv("LOG_LEVEL", "")
	cfg := Load()
	assert.Equal(t, "fecledger.db", cfg.DBPath)
	assert.Equal(t, ":8888", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FEC_DB", "/tmp/ventes.db")
	t.Setenv("FEC_SERVER", "http://fec.internal:9000")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()
	assert.Equal(t, "/tmp/ventes.db", cfg.DBPath)
	assert.Equal(t, "http://fec.internal:9000", cfg.ServerURL)

	lc := cfg.LoggerConfig()
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, "info", lc.Level)
}
