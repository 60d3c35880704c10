package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarryRage/blockbiller/pkg/config"
)

type testConfig struct {
	Host    string `env:"TEST_HOST" envDefault:"localhost"`
	Port    int    `env:"TEST_PORT" envDefault:"8080"`
	FeeBps  int64  `env:"TEST_FEE_BPS"`
	Debug   bool   `env:"TEST_DEBUG" envDefault:"false"`
	Channel string `env:"TEST_CHANNEL,required"`
}

// Env-dependent tests must not run in parallel: t.Setenv forbids it.
func TestLoad(t *testing.T) {
	t.Run("populates from environment", func(t *testing.T) {
		t.Setenv("TEST_HOST", "billing.internal")
		t.Setenv("TEST_PORT", "9090")
		t.Setenv("TEST_FEE_BPS", "500")
		t.Setenv("TEST_DEBUG", "true")
		t.Setenv("TEST_CHANNEL", "events")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "billing.internal", cfg.Host)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, int64(500), cfg.FeeBps)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "events", cfg.Channel)
	})

	t.Run("applies defaults when unset", func(t *testing.T) {
		t.Setenv("TEST_CHANNEL", "events")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
		assert.Zero(t, cfg.FeeBps)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("unparseable value fails", func(t *testing.T) {
		t.Setenv("TEST_PORT", "not-a-number")
		t.Setenv("TEST_CHANNEL", "events")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer fails", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg testConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("returns on success", func(t *testing.T) {
		t.Setenv("TEST_CHANNEL", "events")

		assert.NotPanics(t, func() {
			var cfg testConfig
			config.MustLoad(&cfg)
		})
	})
}
