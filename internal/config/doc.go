// Package config loads runtime configuration for the notekeeper app.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory for store files and the vault
//	-r string   remote feature-flag document URL
//	-t int      remote fetch timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5s" or integer nanoseconds:
//
//	{
//	  "data_dir": "/var/lib/notekeeper",
//	  "remote_config_url": "https://example.com/flags.json",
//	  "remote_fetch_timeout": "5s",
//	  "destructive_migrations": true
//	}
//
// Primary API
//
//   - type Config                     — runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
