package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func newFlags(t *testing.T, v *viper.Viper, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		DatabasePath:   "profile.db",
		LogLevel:       "info",
		LogBackend:     "slog",
		LogFormat:      "text",
		PasswordScheme: "plain",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoadConfig_SourcesAndPrecedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_path":   "from-file.db",
		"log_level":       "debug",
		"password_scheme": "argon2id",
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := LoadConfig(viper.New(), path)
		require.NoError(t, err)

		assert.Equal(t, "from-file.db", cfg.DatabasePath)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "argon2id", cfg.PasswordScheme)
		assert.Equal(t, "slog", cfg.LogBackend)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("GOPHPROFILE_DATABASE_PATH", "from-env.db")

		cfg, err := LoadConfig(viper.New(), path)
		require.NoError(t, err)
		assert.Equal(t, "from-env.db", cfg.DatabasePath)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("GOPHPROFILE_DATABASE_PATH", "from-env.db")

		v := viper.New()
		fs := newFlags(t, v, "--db", "from-flag.db", "--log-backend", "zap", "-c", path)

		cfg, err := LoadConfig(v, ConfigFile(fs))
		require.NoError(t, err)
		assert.Equal(t, "from-flag.db", cfg.DatabasePath)
		assert.Equal(t, "zap", cfg.LogBackend)
		assert.Equal(t, "argon2id", cfg.PasswordScheme)
	})

	t.Run("unset flags do not shadow file", func(t *testing.T) {
		v := viper.New()
		newFlags(t, v)

		cfg, err := LoadConfig(v, path)
		require.NoError(t, err)
		assert.Equal(t, "from-file.db", cfg.DatabasePath)
	})
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(viper.New(), filepath.Join(dir, "absent.json"))
		require.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		_, err := LoadConfig(viper.New(), bad)
		require.Error(t, err)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"password_scheme": "rot13"})
		_, err := LoadConfig(viper.New(), path)
		require.ErrorContains(t, err, "rot13")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "zap json", mutate: func(c *Config) { c.LogBackend = "zap"; c.LogFormat = "json" }},
		{name: "empty db", mutate: func(c *Config) { c.DatabasePath = "" }, wantErr: true},
		{name: "bad backend", mutate: func(c *Config) { c.LogBackend = "logrus" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoggingOptions(t *testing.T) {
	c := Config{LogBackend: "zap", LogLevel: "warn", LogFormat: "json"}
	o := c.LoggingOptions()
	assert.Equal(t, "zap", o.Backend)
	assert.Equal(t, "warn", o.Level)
	assert.Equal(t, "json", o.Format)
}
