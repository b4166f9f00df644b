package config

import (
	"encoding/json"
	"os"

	"github.com/pkozlov/flowdeck/internal/flagx"
	"github.com/pkozlov/flowdeck/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	ServerBaseURL  string          `json:"server_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DataDir        string          `json:"data_dir"`
	MockLatency    *timex.Duration `json:"mock_latency"`
}

// parseJson overlays Config with values loaded from a JSON file resolved via
// the -c/-config flags. With no such flag the function is a no-op. Fields
// absent from the file keep their current value. Panics on read or unmarshal
// errors.
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

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.MockLatency != nil {
		cfg.MockLatency = jc.MockLatency.Duration
	}
}
