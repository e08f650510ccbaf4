package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Exclude Exclude `toml:"exclude"`
	Output  Output  `toml:"output"`
	Watch   Watch   `toml:"watch"`
	History History `toml:"history"`
	Metrics Metrics `toml:"metrics"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Output struct {
	// HTML is the report destination; empty means standard output.
	HTML string `toml:"html"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// EventsPerSecond caps how fast change batches trigger rescans.
	EventsPerSecond float64 `toml:"events_per_second"`
	Burst           int     `toml:"burst"`
}

type History struct {
	// Path of the snapshot database; empty disables history.
	Path string `toml:"path"`
}

type Metrics struct {
	// Addr serves /metrics in watch mode; empty disables the listener.
	Addr string `toml:"addr"`
}

// Load reads a TOML config. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.Exclude.Dirs) == 0 {
		// Version-control metadata; dot-directories are pruned unconditionally.
		c.Exclude.Dirs = []string{"CVS", "RCS", "SCCS", "node_modules"}
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Watch.EventsPerSecond == 0 {
		c.Watch.EventsPerSecond = 2
	}
	if c.Watch.Burst == 0 {
		c.Watch.Burst = 4
	}
}
