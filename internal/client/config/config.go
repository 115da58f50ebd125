package config

import "time"

// Conflict strategies applied when the mirror reconciles with the server.
const (
	StrategyServerWins = "server-wins"
	StrategyLocalWins  = "local-wins"
	StrategyMerge      = "merge"
)

// Config holds runtime settings for the tracker CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client checks server reachability.
//   - SyncInterval: period of the background mirror reconciliation.
//   - TickInterval: period of the live elapsed-time display tick.
//   - RequestTimeout: upper bound of a single server call.
//   - LocalDBFile: SQLite file holding the mirror, the offline queue and auth metadata.
//   - MaxReplayAttempts: a queued offline action is dropped after this many failed replays.
//   - ConflictStrategy: server-wins, local-wins or merge.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	SyncInterval        time.Duration
	TickInterval        time.Duration
	RequestTimeout      time.Duration
	LocalDBFile         string
	MaxReplayAttempts   int
	ConflictStrategy    string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.SyncInterval = 30 * time.Second
	c.TickInterval = time.Second
	c.RequestTimeout = 10 * time.Second
	c.LocalDBFile = "tracker.db"
	c.MaxReplayAttempts = 3
	c.ConflictStrategy = StrategyServerWins
	c.LogLevel = "info"
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
