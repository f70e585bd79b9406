// Package config holds the runtime knobs that are not part of a scenario:
// logging, output paths, and pacing. Values come from flags, environment
// and an optional config file via viper; precedence is viper's usual
// flag > env > file > default.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Database is the sqlite recording path; empty disables it.
	Database string `mapstructure:"database"`
	// ChunkDir is the chunk-file recording directory; empty disables it.
	ChunkDir    string `mapstructure:"chunk_dir"`
	ChunkFrames int    `mapstructure:"chunk_frames"`
	// Snapshot is written at the end of a run; empty disables it.
	Snapshot string `mapstructure:"snapshot"`

	// TickRate paces the run in ticks per second; 0 runs flat out.
	TickRate float64 `mapstructure:"tick_rate"`
	// Progress is the interval between progress log lines.
	Progress time.Duration `mapstructure:"progress"`
	// Diagnostics adds energy and momentum totals to progress lines.
	Diagnostics bool `mapstructure:"diagnostics"`
}

// SetDefaults registers every key with its default on v. Called before
// binding flags so unset keys resolve instead of unmarshalling zeroes.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("database", "")
	v.SetDefault("chunk_dir", "")
	v.SetDefault("chunk_frames", 100)
	v.SetDefault("snapshot", "")
	v.SetDefault("tick_rate", 0)
	v.SetDefault("progress", 5*time.Second)
	v.SetDefault("diagnostics", false)
}

// Load unmarshals and validates the configuration from v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values no run could work with.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format must be text or json, got %q", c.LogFormat)
	}
	if c.TickRate < 0 {
		return fmt.Errorf("config: tick_rate cannot be negative, got %v", c.TickRate)
	}
	if c.ChunkFrames <= 0 {
		return fmt.Errorf("config: chunk_frames must be positive, got %d", c.ChunkFrames)
	}
	if c.Progress <= 0 {
		return fmt.Errorf("config: progress must be positive, got %v", c.Progress)
	}
	return nil
}
