package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config holds persistent settings stored at <profileDir>/tui.json.
// An empty Theme means follow the terminal background.
type Config struct {
	Theme        string `json:"theme,omitempty"`
	ComputeDelay string `json:"compute_delay,omitempty"`
	Result       string `json:"result,omitempty"`
	BufferSize   int    `json:"buffer_size,omitempty"`
	LogLevel     string `json:"log_level,omitempty"`
}

const filename = "tui.json"

// Load reads <profileDir>/tui.json and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
// Fields left empty in the file keep their defaults.
func Load(profileDir string) Config {
	cfg := defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaults()
	}
	return cfg
}

// Save writes cfg to <profileDir>/tui.json, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// Delay parses ComputeDelay, falling back to the default on bad input.
func (c Config) Delay() time.Duration {
	d, err := time.ParseDuration(c.ComputeDelay)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaults().ComputeDelay)
	}
	return d
}

func defaults() Config {
	return Config{
		ComputeDelay: "2s",
		Result:       "Result",
		BufferSize:   16,
		LogLevel:     "info",
	}
}
