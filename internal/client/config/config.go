package config

import (
	"os"
	"time"
)

const (
	IdentitySimulated = "simulated"
	IdentityRemote    = "remote"

	StorageSecure = "secure"
	StorageMemory = "memory"
)

// Config holds runtime settings for the summarizer CLI.
type Config struct {
	BackendURL   string `env:"YTS_BACKEND_URL"`
	AuthURL      string `env:"YTS_AUTH_URL"`
	IdentityMode string `env:"YTS_IDENTITY_MODE"`
	StorageKind  string `env:"YTS_STORAGE"`
	DataDir      string `env:"YTS_DATA_DIR"`

	// SimulatedLatency is the artificial delay of the local auth operations.
	SimulatedLatency time.Duration `env:"YTS_SIMULATED_LATENCY"`
	// RequestTimeout bounds one backend round trip. Zero means no timeout.
	RequestTimeout time.Duration `env:"YTS_REQUEST_TIMEOUT"`

	SubmitRate  float64 `env:"YTS_SUBMIT_RATE"`
	SubmitBurst int     `env:"YTS_SUBMIT_BURST"`

	LogLevel     string `env:"YTS_LOG_LEVEL"`
	MetricsAddr  string `env:"YTS_METRICS_ADDR"`
	OTLPEndpoint string `env:"YTS_OTLP_ENDPOINT"`
	WebsiteURL   string `env:"YTS_WEBSITE_URL"`
}

// LoadDefaults populates c with the production defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "https://wjrjdxentwfwpiqnwlph.hasura.ap-south-1.nhost.run"
	c.AuthURL = "https://wjrjdxentwfwpiqnwlph.auth.ap-south-1.nhost.run"
	c.IdentityMode = IdentitySimulated
	c.StorageKind = StorageSecure
	c.DataDir = ".ytsummarizer"
	c.SimulatedLatency = time.Second
	c.RequestTimeout = 0
	c.SubmitRate = 0.5
	c.SubmitBurst = 2
	c.LogLevel = "info"
	c.WebsiteURL = "https://yt-summariser.netlify.app"
}

// LoadConfig builds a Config from defaults, then JSON, environment and
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
