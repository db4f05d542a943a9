package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arokeji/Nailted-Back/core/config"
)

type limitConfig struct {
	Limit  int           `env:"TEST_SEND_RESULTS_LIMIT" envDefault:"5"`
	Window time.Duration `env:"TEST_SEND_RESULTS_WINDOW" envDefault:"1h"`
}

type requiredConfig struct {
	Key string `env:"TEST_EMAIL_INDEX_KEY,required"`
}

// Not parallel: t.Setenv and the per-type cache are process wide.
func TestLoadParsesAndCaches(t *testing.T) {
	t.Setenv("TEST_SEND_RESULTS_LIMIT", "3")

	var cfg limitConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 3, cfg.Limit)
	assert.Equal(t, time.Hour, cfg.Window)

	t.Setenv("TEST_SEND_RESULTS_LIMIT", "9")
	var again limitConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, 3, again.Limit, "second load must come from cache")
}

func TestLoadRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}
