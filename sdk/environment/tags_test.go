package environment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/sdk/environment"
)

type sampleConfig struct {
	URL      string        `env:"URL" default:"postgres://localhost/db"`
	Conns    int           `env:"CONNS" default:"5"`
	Wait     time.Duration `env:"WAIT" default:"2s"`
	Verbose  bool          `env:"VERBOSE"`
	Levels   []string      `env:"LEVELS" default:"warn, error"`
	Ignored  string
	internal string `env:"INTERNAL"`
}

func TestParseEnvTagsDefaults(t *testing.T) {
	var cfg sampleConfig
	require.NoError(t, environment.ParseEnvTags("ENVTEST", &cfg))

	assert.Equal(t, "postgres://localhost/db", cfg.URL)
	assert.Equal(t, 5, cfg.Conns)
	assert.Equal(t, 2*time.Second, cfg.Wait)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, []string{"warn", "error"}, cfg.Levels)
	assert.Empty(t, cfg.internal)
}

func TestParseEnvTagsOverrides(t *testing.T) {
	t.Setenv("ENVTEST_URL", "postgres://db:5432/app")
	t.Setenv("ENVTEST_CONNS", "12")
	t.Setenv("ENVTEST_WAIT", "150ms")
	t.Setenv("ENVTEST_VERBOSE", "true")
	t.Setenv("ENVTEST_LEVELS", "query,info")

	var cfg sampleConfig
	require.NoError(t, environment.ParseEnvTags("ENVTEST", &cfg))

	assert.Equal(t, "postgres://db:5432/app", cfg.URL)
	assert.Equal(t, 12, cfg.Conns)
	assert.Equal(t, 150*time.Millisecond, cfg.Wait)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{"query", "info"}, cfg.Levels)
}

func TestParseEnvTagsErrors(t *testing.T) {
	t.Run("not a pointer", func(t *testing.T) {
		assert.Error(t, environment.ParseEnvTags("", sampleConfig{}))
	})

	t.Run("required", func(t *testing.T) {
		var cfg struct {
			Token string `env:"TOKEN" required:"true"`
		}
		err := environment.ParseEnvTags("ENVTEST_MISSING", &cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENVTEST_MISSING_TOKEN")
	})

	t.Run("bad int", func(t *testing.T) {
		t.Setenv("ENVTEST_CONNS", "many")
		var cfg sampleConfig
		assert.Error(t, environment.ParseEnvTags("ENVTEST", &cfg))
	})
}

func TestGetNamespaceEnvKey(t *testing.T) {
	assert.Equal(t, "BOOKSHARE_LOG", environment.GetNamespaceEnvKey("BOOKSHARE", "LOG"))
	assert.Equal(t, "LOG", environment.GetNamespaceEnvKey("", "LOG"))
}

func TestParseEnvTagsNested(t *testing.T) {
	type pool struct {
		URL string `env:"DATABASE_URL" default:"postgres://localhost/db"`
	}
	type cache struct {
		Size uint16 `env:"SIZE" default:"64"`
	}
	var cfg struct {
		Name  string `env:"NAME"`
		Pool  pool
		Cache cache `envPrefix:"CACHE"`
		Since time.Time
	}

	t.Setenv("ENVNEST_DATABASE_URL", "postgres://db/nested")
	t.Setenv("ENVNEST_CACHE_SIZE", "128")
	require.NoError(t, environment.ParseEnvTags("ENVNEST", &cfg))

	assert.Equal(t, "postgres://db/nested", cfg.Pool.URL)
	assert.Equal(t, uint16(128), cfg.Cache.Size)
	assert.True(t, cfg.Since.IsZero())

	t.Setenv("ENVNEST_CACHE_SIZE", "70000")
	err := environment.ParseEnvTags("ENVNEST", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENVNEST_CACHE_SIZE")
}
