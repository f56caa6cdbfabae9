package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/ytsummarizer/internal/flagx"
	"github.com/dmitrijs2005/ytsummarizer/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields let
// absent keys keep the values from earlier layers.
type JsonConfig struct {
	BackendURL       *string         `json:"backend_url"`
	AuthURL          *string         `json:"auth_url"`
	IdentityMode     *string         `json:"identity_mode"`
	StorageKind      *string         `json:"storage"`
	DataDir          *string         `json:"data_dir"`
	SimulatedLatency *timex.Duration `json:"simulated_latency"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	SubmitRate       *float64        `json:"submit_rate"`
	SubmitBurst      *int            `json:"submit_burst"`
	LogLevel         *string         `json:"log_level"`
	MetricsAddr      *string         `json:"metrics_addr"`
	OTLPEndpoint     *string         `json:"otlp_endpoint"`
	WebsiteURL       *string         `json:"website_url"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
// Without the flag it does nothing; read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.BackendURL, jc.BackendURL)
	setString(&cfg.AuthURL, jc.AuthURL)
	setString(&cfg.IdentityMode, jc.IdentityMode)
	setString(&cfg.StorageKind, jc.StorageKind)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	setString(&cfg.OTLPEndpoint, jc.OTLPEndpoint)
	setString(&cfg.WebsiteURL, jc.WebsiteURL)

	if jc.SimulatedLatency != nil {
		cfg.SimulatedLatency = jc.SimulatedLatency.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SubmitRate != nil {
		cfg.SubmitRate = *jc.SubmitRate
	}
	if jc.SubmitBurst != nil {
		cfg.SubmitBurst = *jc.SubmitBurst
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
