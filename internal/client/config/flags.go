package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/ytsummarizer/internal/flagx"
)

var knownFlags = []string{"-a", "-u", "-m", "-s", "-d", "-l", "-t", "-v", "-p"}

// parseFlags populates cfg from the short flags listed in the package doc.
// Other arguments are filtered out first so the JSON layer's -c/-config
// never trips this flag set. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.AuthURL, "u", cfg.AuthURL, "identity provider base URL")
	fs.StringVar(&cfg.IdentityMode, "m", cfg.IdentityMode, "identity mode (simulated|remote)")
	fs.StringVar(&cfg.StorageKind, "s", cfg.StorageKind, "storage backend (secure|memory)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	latency := fs.Int("l", int(cfg.SimulatedLatency.Milliseconds()), "simulated latency (in milliseconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 disables)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "p", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	// Durations are only replaced when given, so sub-unit values from earlier
	// layers survive the int round trip.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "l":
			cfg.SimulatedLatency = time.Duration(*latency) * time.Millisecond
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
