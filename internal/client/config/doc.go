// Package config loads runtime configuration for the gophprofile CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, loaded into the environment.
//  3. Optional JSON file selected with -c or --config.
//  4. GOPHPROFILE_* environment variables.
//  5. Command-line flags bound with BindFlags.
//
// # JSON schema
//
//	{
//	  "database_path": "profile.db",
//	  "log_level": "info",
//	  "log_backend": "slog",
//	  "log_format": "text",
//	  "password_scheme": "plain"
//	}
//
// The plain password scheme keeps passwords as typed. It exists for
// compatibility with the local-storage layout and is not a security control.
package config
