// Package config handles configuration for the client component, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the FlowDeck CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request transport timeout; there are no retries.
//   - DataDir: directory for the durable local store (token, mode flag,
//     mock collection).
//   - MockLatency: simulated delay applied to every offline operation so
//     the UI paths behave like network calls.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DataDir        string
	MockLatency    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DataDir = ".flowdeck"
	c.MockLatency = 300 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
