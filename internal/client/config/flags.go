package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend server
//	-i int      online check interval in seconds
//	-y int      sync interval in seconds
//	-k int      display tick interval in milliseconds
//	-w int      request timeout in seconds
//	-f string   local database file
//	-m int      max replay attempts of a queued offline action
//	-x string   conflict strategy (server-wins, local-wins, merge)
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-y", "-k", "-w", "-f", "-m", "-x", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	syncInterval := fs.Int("y", int(cfg.SyncInterval.Seconds()), "sync interval (in seconds)")
	tickInterval := fs.Int("k", int(cfg.TickInterval.Milliseconds()), "display tick interval (in milliseconds)")
	requestTimeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LocalDBFile, "f", cfg.LocalDBFile, "local database file")
	fs.IntVar(&cfg.MaxReplayAttempts, "m", cfg.MaxReplayAttempts, "max replay attempts of a queued action")
	fs.StringVar(&cfg.ConflictStrategy, "x", cfg.ConflictStrategy, "conflict strategy: server-wins, local-wins or merge")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.SyncInterval = time.Duration(*syncInterval) * time.Second
	cfg.TickInterval = time.Duration(*tickInterval) * time.Millisecond
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
