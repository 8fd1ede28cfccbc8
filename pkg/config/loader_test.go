package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/finauth/pkg/config"
)

type appConfig struct {
	Name  string   `env:"FINAUTH_TEST_NAME" envDefault:"default"`
	Port  int      `env:"FINAUTH_TEST_PORT" envDefault:"8080"`
	Hosts []string `env:"FINAUTH_TEST_HOSTS" envSeparator:","`
}

type requiredConfig struct {
	Secret string `env:"FINAUTH_TEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("nil pointer", func(t *testing.T) {
		var cfg *appConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("parses and caches", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("FINAUTH_TEST_NAME", "first")

		var cfg appConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "first", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)

		t.Setenv("FINAUTH_TEST_NAME", "second")
		var again appConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "first", again.Name, "cached value is returned")
	})

	t.Run("missing required", func(t *testing.T) {
		config.ResetCache()
		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("FINAUTH_TEST_NAME", "")
	t.Setenv("FINAUTH_TEST_PORT", "")
	t.Setenv("FINAUTH_TEST_HOSTS", "")

	require.NoError(t, config.LoadEnv("testdata/app.env"))

	var cfg appConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Hosts)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
}
