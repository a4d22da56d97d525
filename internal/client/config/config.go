package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophprofile/internal/cryptox"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. GOPHPROFILE_DATABASE_PATH.
const EnvPrefix = "GOPHPROFILE"

// Config holds runtime settings for the gophprofile CLI.
//
// Fields:
//   - DatabasePath: SQLite file holding the local store and the accounts.
//   - LogLevel / LogBackend / LogFormat: see logging.Options.
//   - PasswordScheme: how new passwords are stored (plain, argon2id, bcrypt).
type Config struct {
	DatabasePath   string `mapstructure:"database_path"`
	LogLevel       string `mapstructure:"log_level"`
	LogBackend     string `mapstructure:"log_backend"`
	LogFormat      string `mapstructure:"log_format"`
	PasswordScheme string `mapstructure:"password_scheme"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "profile.db"
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
	c.LogFormat = "text"
	c.PasswordScheme = cryptox.SchemePlain
}

func (c *Config) defaultsMap() map[string]any {
	return map[string]any{
		"database_path":   c.DatabasePath,
		"log_level":       c.LogLevel,
		"log_backend":     c.LogBackend,
		"log_format":      c.LogFormat,
		"password_scheme": c.PasswordScheme,
	}
}

// LoadConfig builds a Config on v. Defaults are registered first, then a
// .env file in the working directory is loaded into the process environment,
// then configFile (JSON) is read if given, then GOPHPROFILE_* variables and
// any flags bound with BindFlags take over. Later sources win.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	defaults := &Config{}
	defaults.LoadDefaults()
	for k, val := range defaults.defaultsMap() {
		v.SetDefault(k, val)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return errors.New("database_path must not be empty")
	}
	if _, err := cryptox.NewHasher(c.PasswordScheme); err != nil {
		return err
	}
	switch c.LogBackend {
	case logging.BackendSlog, logging.BackendZap:
	default:
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// LoggingOptions maps the logging settings onto logging.Options.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Backend: c.LogBackend, Level: c.LogLevel, Format: c.LogFormat}
}
