// Package flagx holds small helpers for layering command-line flags over
// file-based configuration.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the allowed flags of args, with their values, so a
// package can parse its own flags from os.Args without failing on flags that
// belong to someone else. Values may be attached (-c=conf.json) or follow as
// the next argument (-c conf.json). As with package flag, one or two leading
// dashes name the same flag, and nothing after a bare "--" is a flag.
//
//	FilterArgs([]string{"-a", ":8080", "--config=x.json", "-v"}, []string{"-c", "-config"})
//	// []string{"--config=x.json"}
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]bool, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[flagName(f)] = true
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		name, _, attached := strings.Cut(arg, "=")
		if !strings.HasPrefix(name, "-") || !allowed[flagName(name)] {
			continue
		}
		filtered = append(filtered, arg)

		// a following token that does not start with a dash is the value
		if !attached && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			filtered = append(filtered, args[i])
		}
	}

	return filtered
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// ConfigEnv names the environment variable consulted when no -c/-config
// flag is given.
const ConfigEnv = "GOPHTRACKER_CONFIG"

// JsonConfigFlags returns the config file path given on the process command
// line, or the value of ConfigEnv.
func JsonConfigFlags() string {
	return ConfigPath(os.Args[1:], os.Getenv(ConfigEnv))
}

// ConfigPath extracts the -c or -config value from args. Only these flags
// are parsed, so the caller's own flag set is not disturbed. fallback is
// returned when neither flag is present.
func ConfigPath(args []string, fallback string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	if config == "" {
		return fallback
	}
	return config
}
