package config

import "time"

// Config holds runtime settings for the notekeeper app.
//
// Fields:
//   - DataDir: directory holding the sealed store files and the vault.
//   - RemoteConfigURL: optional URL of the remote feature-flag document.
//   - RemoteFetchTimeout: upper bound for the feature-flag fetch.
//   - DestructiveMigrations: recreate a store from scratch when its schema
//     cannot be migrated. This silently drops that store's data and exists as
//     an explicit, named choice because of that consequence.
type Config struct {
	DataDir               string
	RemoteConfigURL       string
	RemoteFetchTimeout    time.Duration
	DestructiveMigrations bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "notekeeper-data"
	c.RemoteConfigURL = ""
	c.RemoteFetchTimeout = 5 * time.Second
	c.DestructiveMigrations = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
