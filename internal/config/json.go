package config

import (
	"encoding/json"
	"os"

	"github.com/shoaib/notekeeper/internal/flagx"
	"github.com/shoaib/notekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "5s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	DataDir               string         `json:"data_dir"`
	RemoteConfigURL       string         `json:"remote_config_url"`
	RemoteFetchTimeout    timex.Duration `json:"remote_fetch_timeout"`
	DestructiveMigrations *bool          `json:"destructive_migrations"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path is resolved from the -c or -config flags via
// flagx.JsonConfigFlags; if no path is given, nothing is loaded. Read or
// unmarshal errors panic (caller may recover if desired). Only fields
// present in the file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RemoteConfigURL != "" {
		cfg.RemoteConfigURL = jc.RemoteConfigURL
	}
	if jc.RemoteFetchTimeout.Duration != 0 {
		cfg.RemoteFetchTimeout = jc.RemoteFetchTimeout.Duration
	}
	if jc.DestructiveMigrations != nil {
		cfg.DestructiveMigrations = *jc.DestructiveMigrations
	}
}
