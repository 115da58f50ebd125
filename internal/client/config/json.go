package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophtracker/internal/flagx"
	"github.com/dmitrijs2005/gophtracker/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SyncInterval        timex.Duration `json:"sync_interval"`
	TickInterval        timex.Duration `json:"tick_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	LocalDBFile         string         `json:"local_db_file"`
	MaxReplayAttempts   int            `json:"max_replay_attempts"`
	ConflictStrategy    string         `json:"conflict_strategy"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags (or the GOPHTRACKER_CONFIG
// environment variable) via flagx.JsonConfigFlags. Keys missing from the
// file keep their current values. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
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

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.LocalDBFile, jc.LocalDBFile)
	setString(&cfg.ConflictStrategy, jc.ConflictStrategy)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.SyncInterval.Duration > 0 {
		cfg.SyncInterval = jc.SyncInterval.Duration
	}
	if jc.TickInterval.Duration > 0 {
		cfg.TickInterval = jc.TickInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MaxReplayAttempts > 0 {
		cfg.MaxReplayAttempts = jc.MaxReplayAttempts
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
