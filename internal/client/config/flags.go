package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":              "database_path",
	"log-level":       "log_level",
	"log-backend":     "log_backend",
	"log-format":      "log_format",
	"password-scheme": "password_scheme",
}

// BindFlags declares the configuration flags on fs and binds them to v.
// The flag defaults are empty on purpose: an unset flag must not shadow a
// value coming from the config file or the environment.
//
//	-c, --config string         path to a JSON config file
//	    --db string             SQLite database file
//	    --log-level string      debug, info, warn, error
//	    --log-backend string    slog or zap
//	    --log-format string     text or json
//	    --password-scheme string plain, argon2id or bcrypt
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.StringP("config", "c", "", "path to a JSON config file")
	fs.String("db", "", "SQLite database file (default profile.db)")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-backend", "", "log backend: slog or zap")
	fs.String("log-format", "", "log format: text or json")
	fs.String("password-scheme", "", "password storage: plain, argon2id or bcrypt")

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// ConfigFile returns the value of the --config flag declared by BindFlags.
func ConfigFile(fs *pflag.FlagSet) string {
	s, _ := fs.GetString("config")
	return s
}
