// Package config loads runtime configuration for the tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or GOPHTRACKER_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "sync_interval": "30s",
//	  "tick_interval": "1s",
//	  "request_timeout": "10s",
//	  "local_db_file": "tracker.db",
//	  "max_replay_attempts": 3,
//	  "conflict_strategy": "server-wins"
//	}
package config
